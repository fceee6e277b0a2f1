package dto

import "strings"

// Request DTOs

// AvailabilityBlock is one {start, end} window inside a bulk payload.
// Clients historically send either start/end or start_time/end_time.
type AvailabilityBlock struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Times resolves the two accepted key spellings, trimmed.
func (b AvailabilityBlock) Times() (start, end string) {
	start = strings.TrimSpace(b.Start)
	if start == "" {
		start = strings.TrimSpace(b.StartTime)
	}
	end = strings.TrimSpace(b.End)
	if end == "" {
		end = strings.TrimSpace(b.EndTime)
	}
	return start, end
}

// AvailabilityPayload is the POST body for the availability endpoint.
// Two shapes share the route: a bulk day-keyed map that replaces the
// whole weekly schedule, and a single block that appends one window.
// The shape is discriminated by the presence of "availability".
type AvailabilityPayload struct {
	Availability map[string][]AvailabilityBlock `json:"availability"`

	Day       *int   `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// IsBulk reports whether the payload uses the weekly-replace shape.
func (p *AvailabilityPayload) IsBulk() bool {
	return p.Availability != nil
}

// Response DTOs

type AvailabilityResponse struct {
	ID        int    `json:"id"`
	Day       int    `json:"day"`
	DayKey    string `json:"day_key"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type AvailabilityListResponse struct {
	Kinesiologist *KinesiologistResponse `json:"kinesiologist,omitempty"`
	Availability  []AvailabilityResponse `json:"availability"`
	Appointments  []AppointmentResponse  `json:"appointments"`
}
