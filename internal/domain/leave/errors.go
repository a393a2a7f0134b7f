package leave

import "errors"

var (
	ErrLeaveNotFound   = errors.New("leave request not found")
	ErrLeaveOverlaps   = errors.New("leave request overlaps an existing request for this period")
	ErrLeaveNotPending = errors.New("leave request has already been reviewed")
	ErrLeaveNotOwned   = errors.New("leave request belongs to another employee")
)
