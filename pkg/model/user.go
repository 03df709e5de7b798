package model

// User is a portal account. Mentors are users with the mentor flag; the
// extra mentor fields describe them in the hacker-facing mentor list.
type User struct {
	ID            string `json:"id,omitempty" bson:"_id,omitempty"`
	Email         string `json:"email" bson:"email" validate:"required,email"`
	FirstName     string `json:"firstName" bson:"first_name" validate:"required,max=100"`
	LastName      string `json:"lastName" bson:"last_name" validate:"max=100"`
	DateOfBirth   string `json:"dateOfBirth,omitempty" bson:"date_of_birth,omitempty"`
	School        string `json:"school,omitempty" bson:"school,omitempty"`
	Grade         *int   `json:"grade,omitempty" bson:"grade,omitempty"`
	Year          *int   `json:"year,omitempty" bson:"year,omitempty"`
	GenderIdentity string `json:"genderIdentity,omitempty" bson:"gender_identity,omitempty"`
	Status        string `json:"status,omitempty" bson:"status,omitempty"`
	Portfolio     string `json:"portfolio,omitempty" bson:"portfolio,omitempty" validate:"omitempty,url"`
	Github        string `json:"github,omitempty" bson:"github,omitempty" validate:"omitempty,url"`
	Linkedin      string `json:"linkedin,omitempty" bson:"linkedin,omitempty" validate:"omitempty,url"`
	Admin         bool   `json:"admin" bson:"admin"`

	Mentor          bool   `json:"mentor" bson:"mentor"`
	Specialization  string `json:"specialization,omitempty" bson:"specialization,omitempty"`
	DiscordUsername string `json:"discordUsername,omitempty" bson:"discord_username,omitempty"`
	Intro           string `json:"intro,omitempty" bson:"intro,omitempty"`
}

// UserUpdate carries the profile fields a user may patch on themselves.
type UserUpdate struct {
	FirstName      string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName       string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	DateOfBirth    string `json:"dateOfBirth,omitempty"`
	School         string `json:"school,omitempty"`
	Grade          *int   `json:"grade,omitempty" validate:"omitempty,min=1,max=13"`
	Year           *int   `json:"year,omitempty"`
	GenderIdentity string `json:"genderIdentity,omitempty"`
	Portfolio      string `json:"portfolio,omitempty" validate:"omitempty,url"`
	Github         string `json:"github,omitempty" validate:"omitempty,url"`
	Linkedin       string `json:"linkedin,omitempty" validate:"omitempty,url"`
}

// Mentor is the hacker-facing projection of a mentor account.
type Mentor struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Specialization  string `json:"specialization,omitempty"`
	DiscordUsername string `json:"discordUsername,omitempty"`
	Intro           string `json:"intro,omitempty"`
}

func (u *User) MentorView() Mentor {
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return Mentor{
		ID:              u.ID,
		Name:            name,
		Email:           u.Email,
		Specialization:  u.Specialization,
		DiscordUsername: u.DiscordUsername,
		Intro:           u.Intro,
	}
}
