package models

import "time"

type SupportCase struct {
    ID            int64     `json:"id"`
    Ref           string    `json:"ref"`
    UserID        int64     `json:"user_id"`
    Category      string    `json:"category"`
    Subject       string    `json:"subject"`
    ScreenshotURL *string   `json:"screenshot_url"`
    Status        string    `json:"status"`
    AssignedTo    *int64    `json:"assigned_to"`
    CreatedAt     time.Time `json:"created_at"`
    UpdatedAt     time.Time `json:"updated_at"`
}

type SupportMessage struct {
    ID        int64     `json:"id"`
    CaseID    int64     `json:"case_id"`
    SenderID  int64     `json:"sender_id"`
    FromAdmin bool      `json:"from_admin"`
    Body      string    `json:"body"`
    CreatedAt time.Time `json:"created_at"`
}

type Announcement struct {
    ID        int64     `json:"id"`
    Title     string    `json:"title"`
    Body      string    `json:"body"`
    Published bool      `json:"published"`
    CreatedBy *int64    `json:"created_by"`
    CreatedAt time.Time `json:"created_at"`
}
