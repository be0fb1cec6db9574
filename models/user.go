package models

import "time"

type User struct {
    ID                 int64     `json:"id"`
    Name               string    `json:"name"`
    Email              string    `json:"email"`
    PasswordHash       string    `json:"-"`
    IsAdmin            bool      `json:"is_admin"`
    OnboardingComplete bool      `json:"onboarding_complete"`
    CreatedAt          time.Time `json:"created_at"`
}
