package models

import "time"

type MedicationLog struct {
    ID         int64     `json:"id"`
    UserID     int64     `json:"user_id"`
    LogDate    string    `json:"log_date"` // YYYY-MM-DD
    Name       string    `json:"name"`
    DoseAmount *float64  `json:"dose_amount"`
    DoseUnit   *string   `json:"dose_unit"`
    Taken      bool      `json:"taken"`
    Notes      *string   `json:"notes"`
    CreatedAt  time.Time `json:"created_at"`
}

// Chip is a quick-add suggestion shown above the day's log.
type Chip struct {
    Name       string   `json:"name"`
    DoseAmount *float64 `json:"dose_amount"`
    DoseUnit   *string  `json:"dose_unit"`
    Source     string   `json:"source"` // recent | starter
}
