package errors

var (
	// Identity
	ErrEmailTaken         = Conflict("email is already registered")
	ErrUserNotFound       = NotFound("user not found")
	ErrInvalidCredentials = Unauthorized("invalid email or password")

	// Rooms
	ErrRoomNotFound       = NotFound("support room not found")
	ErrRoomAlreadyClaimed = Conflict("room already claimed")
	ErrRoomTerminal       = FailedPrecondition("room is resolved or closed")
	ErrRoomUnclaimed      = FailedPrecondition("an unclaimed room can only be closed by staff")
	ErrNotParticipant     = Forbidden("not a participant of this room")
	ErrNotSupporter       = Forbidden("only supporters can claim rooms")
	ErrOwnRoomClaim       = InvalidArg("cannot claim a room you opened")

	// Bookings
	ErrBookingNotFound = NotFound("booking not found")
	ErrSlotTaken       = Conflict("counselor already booked for this slot")
	ErrNotCounselor    = InvalidArg("selected user is not a counselor")
	ErrInvalidSlot     = InvalidArg("booking must end after it starts")

	// Peer applications
	ErrApplicationNotFound = NotFound("peer application not found")
	ErrApplicationDecided  = FailedPrecondition("application already reviewed")

	// Crisis
	ErrAlertNotFound = NotFound("crisis alert not found")
)
