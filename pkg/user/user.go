package user

// Role describes how a user participates in the recruitment pipeline.
type Role string

const (
	RoleRecruiter   Role = "recruiter"
	RoleInterviewer Role = "interviewer"
	RoleCoordinator Role = "coordinator"
)

// User is an account that can own a calendar session and be assigned to
// interview events.
type User struct {
	ID          string
	Name        string
	PicturePath string
	Role        Role
	// Color is the display color used for the user's events when the event
	// itself carries none.
	Color string
}
