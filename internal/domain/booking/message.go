package booking

const (
	MsgWaitlisted      = "The program is full. You have been added to the waitlist."
	MsgFree            = "Registration successful!"
	MsgOnlinePayment   = "Please complete payment to confirm your booking"
	MsgPayAsInstructed = "Registration successful! Please make payment as instructed."
)

func StatusMessage(waitlisted, isFree bool, method PaymentMethod) string {
	switch {
	case waitlisted:
		return MsgWaitlisted
	case isFree:
		return MsgFree
	case method == MethodOnline:
		return MsgOnlinePayment
	default:
		return MsgPayAsInstructed
	}
}
