package controllers

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/gin-gonic/gin"
    "nutrilog/backend/database"
    "nutrilog/backend/models"
)

var validDoseUnits = map[string]bool{
    "mg": true, "mcg": true, "g": true, "IU": true, "ml": true,
    "tablet": true, "capsule": true, "drop": true, "spray": true, "other": true,
}

// parseDay normalizes a YYYY-MM-DD date string.
func parseDay(s string) (string, error) {
    d, err := time.Parse("2006-01-02", s)
    if err != nil {
        return "", errors.New("date must be YYYY-MM-DD")
    }
    return d.Format("2006-01-02"), nil
}

type MedCreateRequest struct {
    Date       string   `json:"date"`
    Name       string   `json:"name"`
    DoseAmount *float64 `json:"dose_amount"`
    DoseUnit   *string  `json:"dose_unit"`
    Taken      bool     `json:"taken"`
    Notes      *string  `json:"notes"`
}

func validateMedEntry(name string, dose *float64, unit *string) error {
    name = strings.TrimSpace(name)
    if name == "" || len(name) > 120 {
        return errors.New("name must be 1-120 characters")
    }
    if dose != nil && *dose <= 0 {
        return errors.New("dose_amount must be > 0")
    }
    if unit != nil && !validDoseUnits[*unit] {
        return errors.New("invalid dose_unit")
    }
    return nil
}

func ListMedLogs() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        day, err := parseDay(c.Query("date"))
        if err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        rows, err := database.Pool.Query(ctx, `SELECT id, user_id, log_date::text, name, dose_amount::float8, dose_unit, taken, notes, created_at
FROM medication_logs WHERE user_id=$1 AND log_date=$2 ORDER BY id`, uid, day)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        defer rows.Close()
        out := []models.MedicationLog{}
        for rows.Next() {
            var m models.MedicationLog
            rows.Scan(&m.ID, &m.UserID, &m.LogDate, &m.Name, &m.DoseAmount, &m.DoseUnit, &m.Taken, &m.Notes, &m.CreatedAt)
            out = append(out, m)
        }
        c.JSON(http.StatusOK, gin.H{"date": day, "items": out})
    }
}

func CreateMedLog() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        var req MedCreateRequest
        if err := c.ShouldBindJSON(&req); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
            return
        }
        day, err := parseDay(req.Date)
        if err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }
        if err := validateMedEntry(req.Name, req.DoseAmount, req.DoseUnit); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        var m models.MedicationLog
        err = database.Pool.QueryRow(ctx, `INSERT INTO medication_logs(user_id, log_date, name, dose_amount, dose_unit, taken, notes)
VALUES($1,$2,$3,$4,$5,$6,$7)
RETURNING id, user_id, log_date::text, name, dose_amount::float8, dose_unit, taken, notes, created_at`,
            uid, day, strings.TrimSpace(req.Name), req.DoseAmount, req.DoseUnit, req.Taken, req.Notes).
            Scan(&m.ID, &m.UserID, &m.LogDate, &m.Name, &m.DoseAmount, &m.DoseUnit, &m.Taken, &m.Notes, &m.CreatedAt)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db insert error"})
            return
        }
        c.JSON(http.StatusOK, m)
    }
}

type MedUpdateRequest struct {
    DoseAmount *float64 `json:"dose_amount"`
    DoseUnit   *string  `json:"dose_unit"`
    Taken      *bool    `json:"taken"`
    Notes      *string  `json:"notes"`
}

// UpdateMedLog is the inline edit behind the dose chip: any subset of
// dose, unit, taken and notes may change.
func UpdateMedLog() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
        var req MedUpdateRequest
        if err := c.ShouldBindJSON(&req); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
            return
        }
        if req.DoseAmount != nil && *req.DoseAmount <= 0 {
            c.JSON(http.StatusBadRequest, gin.H{"error": "dose_amount must be > 0"})
            return
        }
        if req.DoseUnit != nil && !validDoseUnits[*req.DoseUnit] {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dose_unit"})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        var m models.MedicationLog
        err := database.Pool.QueryRow(ctx, `UPDATE medication_logs SET
dose_amount=COALESCE($1, dose_amount),
dose_unit=COALESCE($2, dose_unit),
taken=COALESCE($3, taken),
notes=COALESCE($4, notes)
WHERE id=$5 AND user_id=$6
RETURNING id, user_id, log_date::text, name, dose_amount::float8, dose_unit, taken, notes, created_at`,
            req.DoseAmount, req.DoseUnit, req.Taken, req.Notes, id, uid).
            Scan(&m.ID, &m.UserID, &m.LogDate, &m.Name, &m.DoseAmount, &m.DoseUnit, &m.Taken, &m.Notes, &m.CreatedAt)
        if err != nil {
            c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
            return
        }
        c.JSON(http.StatusOK, m)
    }
}

type CloneDayRequest struct {
    FromDate string `json:"from_date"`
    ToDate   string `json:"to_date"`
}

// CloneMedDay copies a whole day's entries onto another day with taken
// reset, the "same as yesterday" button.
func CloneMedDay() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        var req CloneDayRequest
        if err := c.ShouldBindJSON(&req); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
            return
        }
        from, err := parseDay(req.FromDate)
        if err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "from_date must be YYYY-MM-DD"})
            return
        }
        to, err := parseDay(req.ToDate)
        if err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "to_date must be YYYY-MM-DD"})
            return
        }
        if from == to {
            c.JSON(http.StatusBadRequest, gin.H{"error": "from_date and to_date must differ"})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        tag, err := database.Pool.Exec(ctx, `INSERT INTO medication_logs(user_id, log_date, name, dose_amount, dose_unit, taken, notes)
SELECT user_id, $3, name, dose_amount, dose_unit, FALSE, notes
FROM medication_logs WHERE user_id=$1 AND log_date=$2 ORDER BY id`, uid, from, to)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        if tag.RowsAffected() == 0 {
            c.JSON(http.StatusNotFound, gin.H{"error": "nothing to clone on from_date"})
            return
        }
        c.JSON(http.StatusOK, gin.H{"cloned": tag.RowsAffected(), "to_date": to})
    }
}

type MedDeleteRequest struct {
    IDs  []int64 `json:"ids"`
    Date string  `json:"date"`
}

// DeleteMedLogs mass-deletes by explicit ids or clears a whole day.
func DeleteMedLogs() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        var req MedDeleteRequest
        if err := c.ShouldBindJSON(&req); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if len(req.IDs) > 0 {
            tag, err := database.Pool.Exec(ctx, `DELETE FROM medication_logs WHERE user_id=$1 AND id = ANY($2)`, uid, req.IDs)
            if err != nil {
                c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
                return
            }
            c.JSON(http.StatusOK, gin.H{"deleted": tag.RowsAffected()})
            return
        }
        if req.Date != "" {
            day, err := parseDay(req.Date)
            if err != nil {
                c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
                return
            }
            tag, err := database.Pool.Exec(ctx, `DELETE FROM medication_logs WHERE user_id=$1 AND log_date=$2`, uid, day)
            if err != nil {
                c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
                return
            }
            c.JSON(http.StatusOK, gin.H{"deleted": tag.RowsAffected()})
            return
        }
        c.JSON(http.StatusBadRequest, gin.H{"error": "provide ids or date"})
    }
}

func f64(v float64) *float64 { return &v }
func str(s string) *string { return &s }

var starterChips = []models.Chip{
    {Name: "Vitamin D3", DoseAmount: f64(2000), DoseUnit: str("IU"), Source: "starter"},
    {Name: "Omega-3", DoseAmount: f64(1000), DoseUnit: str("mg"), Source: "starter"},
    {Name: "Magnesium", DoseAmount: f64(400), DoseUnit: str("mg"), Source: "starter"},
    {Name: "Creatine", DoseAmount: f64(5), DoseUnit: str("g"), Source: "starter"},
    {Name: "Multivitamin", DoseAmount: f64(1), DoseUnit: str("tablet"), Source: "starter"},
    {Name: "Zinc", DoseAmount: f64(25), DoseUnit: str("mg"), Source: "starter"},
}

// mergeChips puts recents first, fills up with starters, dedupes on
// lowercased name and caps the result.
func mergeChips(recents, starters []models.Chip, limit int) []models.Chip {
    seen := map[string]bool{}
    out := []models.Chip{}
    for _, group := range [][]models.Chip{recents, starters} {
        for _, ch := range group {
            key := strings.ToLower(strings.TrimSpace(ch.Name))
            if key == "" || seen[key] {
                continue
            }
            seen[key] = true
            out = append(out, ch)
            if len(out) >= limit {
                return out
            }
        }
    }
    return out
}

func MedChips() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        rows, err := database.Pool.Query(ctx, `SELECT name, dose_amount::float8, dose_unit FROM (
    SELECT DISTINCT ON (lower(name)) name, dose_amount, dose_unit, created_at
    FROM medication_logs WHERE user_id=$1
    ORDER BY lower(name), created_at DESC
) t ORDER BY created_at DESC LIMIT 8`, uid)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        defer rows.Close()
        recents := []models.Chip{}
        for rows.Next() {
            ch := models.Chip{Source: "recent"}
            rows.Scan(&ch.Name, &ch.DoseAmount, &ch.DoseUnit)
            recents = append(recents, ch)
        }
        c.JSON(http.StatusOK, gin.H{"chips": mergeChips(recents, starterChips, 12)})
    }
}
