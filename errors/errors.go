package errors

import "fmt"

var (
	ErrWorkerPanic         = fmt.Errorf("worker panic")
	ErrUserNotAllowlisted  = fmt.Errorf("user not allowlisted")
	ErrGroupNotAllowlisted = fmt.Errorf("group not allowlisted")
	ErrEmptyResponse       = fmt.Errorf("provider returned no content")
)
