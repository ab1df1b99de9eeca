package audit

const (
	ActionBookingCreated        = "booking_created"
	ActionBookingWaitlisted     = "booking_waitlisted"
	ActionCancellationRequested = "cancellation_requested"
	ActionCancellationApproved  = "cancellation_approved"
	ActionCancellationDeclined  = "cancellation_declined"
	ActionWaitlistOffered       = "waitlist_offered"
	ActionPaymentStatusUpdated  = "payment_status_updated"

	ActionProgramCreated       = "program_created"
	ActionProgramStatusChanged = "program_status_changed"
	ActionProgramDuplicated    = "program_duplicated"
	ActionProgramDeleted       = "program_deleted"
	ActionTemplateSaved        = "template_saved"

	ActionVenueCreated = "venue_created"
	ActionVenueUpdated = "venue_updated"
	ActionVenueDeleted = "venue_deleted"

	ActionStudentUpdated     = "student_updated"
	ActionHealthFormReviewed = "health_form_reviewed"
)

const (
	EntityBooking    = "booking"
	EntityProgram    = "program"
	EntityTemplate   = "schedule_template"
	EntityVenue      = "venue"
	EntityStudent    = "student"
	EntityHealthForm = "health_form"
)
