package recording

type Recorder interface {
	Record(msg string) error
	Close()
}
