package model

import (
	"strconv"
	"time"
)

// Sentinels substituted for absent review fields. Records missing a name,
// rating or body are indexed with these defaults instead of being rejected.
const (
	UnknownName  = "Unknown"
	NoRating     = "N/A"
	NoReviewText = "No review text"
)

// Review is a single student-written review of a teacher. Rating is a
// pointer because source records may carry no rating at all, which must
// stay distinguishable from a rating of zero.
type Review struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	StudentID   int      `gorm:"not null" json:"student_id"`
	TeacherID   int      `gorm:"not null;index" json:"teacher_id"`
	StudentName string   `gorm:"size:128" json:"student_name"`
	TeacherName string   `gorm:"size:128" json:"teacher_name"`
	Rating      *float64 `json:"rating"`
	Review      string   `gorm:"type:text" json:"review"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Review) DisplayStudentName() string {
	if r.StudentName == "" {
		return UnknownName
	}
	return r.StudentName
}

func (r *Review) DisplayTeacherName() string {
	if r.TeacherName == "" {
		return UnknownName
	}
	return r.TeacherName
}

// DisplayRating renders the rating without a trailing ".0" for whole
// numbers, so a 5-star review reads "5" rather than "5.000000".
func (r *Review) DisplayRating() string {
	if r.Rating == nil {
		return NoRating
	}
	return trimFloat(*r.Rating)
}

func (r *Review) DisplayReview() string {
	if r.Review == "" {
		return NoReviewText
	}
	return r.Review
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
