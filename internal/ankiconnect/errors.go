package ankiconnect

import "fmt"

// RemoteError means AnkiConnect understood the request and rejected it.
// These are never retried.
type RemoteError struct {
	Action  string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("AnkiConnect error: %s", e.Message)
}

// TransportError means the service could not be reached at all: timeout,
// connection failure or a malformed response. It carries the last
// underlying failure after retries are exhausted.
type TransportError struct {
	Action   string
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to reach AnkiConnect after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UnavailableError is raised by the startup availability check when
// AnkiConnect does not answer in time. It is fatal to the session.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return "Connection to AnkiConnect timed out. Please ensure:\n" +
		"1. Anki is running\n" +
		"2. AnkiConnect add-on is installed (Tools > Add-ons > Get Add-ons > Code: 2055492159)\n" +
		"3. Anki has been restarted after installing AnkiConnect"
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}
