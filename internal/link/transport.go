package link

// Transport is the line-oriented channel to the robot. ReadLine blocks
// until a line, an error, or Close; implementations must unblock pending
// reads when closed.
type Transport interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
}

const logPrefix = "[artie/link]"
