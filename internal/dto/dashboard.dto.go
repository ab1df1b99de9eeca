package dto

import (
	"time"

	domainProgram "github.com/BruksfildServices01/shala-api/internal/domain/program"
	domainStudent "github.com/BruksfildServices01/shala-api/internal/domain/student"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type ProgramSummaryDTO struct {
	models.Program
	ActiveBookings     int64 `json:"active_bookings"`
	WaitlistedBookings int64 `json:"waitlisted_bookings"`
}

func NewProgramSummaryDTOs(items []domainProgram.Summary) []ProgramSummaryDTO {
	out := make([]ProgramSummaryDTO, 0, len(items))
	for _, it := range items {
		out = append(out, ProgramSummaryDTO{
			Program:            it.Program,
			ActiveBookings:     it.ActiveBookings,
			WaitlistedBookings: it.WaitlistedBookings,
		})
	}
	return out
}

type StudentListItemDTO struct {
	models.Student
	ProgramCount  int        `json:"program_count"`
	LastBookingAt *time.Time `json:"last_booking_at"`
}

func NewStudentListItemDTOs(items []domainStudent.ListItem) []StudentListItemDTO {
	out := make([]StudentListItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, StudentListItemDTO{
			Student:       it.Student,
			ProgramCount:  it.ProgramCount,
			LastBookingAt: it.LastBookingAt,
		})
	}
	return out
}

type StudentDetailDTO struct {
	Student  *models.Student  `json:"student"`
	Bookings []models.Booking `json:"bookings"`
}
