package controllers

import (
    "context"
    "net/http"
    "os"
    "path/filepath"
    "strconv"
    "strings"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/google/generative-ai-go/genai"
    "github.com/google/uuid"
    "nutrilog/backend/config"
    "nutrilog/backend/database"
    "nutrilog/backend/models"
    "nutrilog/backend/utils"
)

var validCategories = map[string]bool{
    "bug": true, "account": true, "billing": true, "data": true, "other": true,
}

var validStatuses = map[string]bool{
    "new": true, "in_progress": true, "resolved": true,
}

var screenshotExts = map[string]bool{
    ".png": true, ".jpg": true, ".jpeg": true, ".webp": true,
}

const maxScreenshotBytes = 5 << 20

// newCaseRef makes the short code users quote back at support.
func newCaseRef() string {
    return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func scanCase(row interface{ Scan(...any) error }) (models.SupportCase, error) {
    var sc models.SupportCase
    err := row.Scan(&sc.ID, &sc.Ref, &sc.UserID, &sc.Category, &sc.Subject,
        &sc.ScreenshotURL, &sc.Status, &sc.AssignedTo, &sc.CreatedAt, &sc.UpdatedAt)
    return sc, err
}

const caseCols = `id, ref, user_id, category, subject, screenshot_url, status, assigned_to, created_at, updated_at`

func CreateSupportCase(cfg config.Config) gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        category := c.PostForm("category")
        subject := strings.TrimSpace(c.PostForm("subject"))
        message := strings.TrimSpace(c.PostForm("message"))
        if !validCategories[category] {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
            return
        }
        if subject == "" || len(subject) > 200 {
            c.JSON(http.StatusBadRequest, gin.H{"error": "subject must be 1-200 characters"})
            return
        }
        if message == "" {
            c.JSON(http.StatusBadRequest, gin.H{"error": "message required"})
            return
        }

        var screenshotURL *string
        if file, err := c.FormFile("screenshot"); err == nil {
            ext := strings.ToLower(filepath.Ext(file.Filename))
            if !screenshotExts[ext] {
                c.JSON(http.StatusBadRequest, gin.H{"error": "screenshot must be png, jpg or webp"})
                return
            }
            if file.Size > maxScreenshotBytes {
                c.JSON(http.StatusBadRequest, gin.H{"error": "screenshot too large (max 5 MB)"})
                return
            }
            if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
                c.JSON(http.StatusInternalServerError, gin.H{"error": "upload dir error"})
                return
            }
            name := uuid.NewString() + ext
            if err := c.SaveUploadedFile(file, filepath.Join(cfg.UploadDir, name)); err != nil {
                c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store screenshot"})
                return
            }
            u := "/uploads/" + name
            screenshotURL = &u
        }

        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        sc, err := scanCase(database.Pool.QueryRow(ctx, `INSERT INTO support_cases(ref, user_id, category, subject, screenshot_url)
VALUES($1,$2,$3,$4,$5) RETURNING `+caseCols, newCaseRef(), uid, category, subject, screenshotURL))
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        // The submitted message opens the thread; a case without it is
        // useless, so roll the case back if the insert fails.
        _, err = database.Pool.Exec(ctx, `INSERT INTO support_messages(case_id, sender_id, from_admin, body)
VALUES($1,$2,FALSE,$3)`, sc.ID, uid, message)
        if err != nil {
            _, _ = database.Pool.Exec(ctx, `DELETE FROM support_cases WHERE id=$1`, sc.ID)
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        c.JSON(http.StatusOK, sc)
    }
}

func ListMySupportCases() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        rows, err := database.Pool.Query(ctx, `SELECT `+caseCols+` FROM support_cases WHERE user_id=$1 ORDER BY created_at DESC`, uid)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        defer rows.Close()
        out := []models.SupportCase{}
        for rows.Next() {
            sc, err := scanCase(rows)
            if err == nil {
                out = append(out, sc)
            }
        }
        c.JSON(http.StatusOK, gin.H{"items": out})
    }
}

func loadCase(ctx context.Context, id int64) (models.SupportCase, error) {
    return scanCase(database.Pool.QueryRow(ctx, `SELECT `+caseCols+` FROM support_cases WHERE id=$1`, id))
}

func loadThread(ctx context.Context, caseID int64) ([]models.SupportMessage, error) {
    rows, err := database.Pool.Query(ctx, `SELECT id, case_id, sender_id, from_admin, body, created_at
FROM support_messages WHERE case_id=$1 ORDER BY id`, caseID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []models.SupportMessage{}
    for rows.Next() {
        var m models.SupportMessage
        rows.Scan(&m.ID, &m.CaseID, &m.SenderID, &m.FromAdmin, &m.Body, &m.CreatedAt)
        out = append(out, m)
    }
    return out, nil
}

func GetSupportCase() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        sc, err := loadCase(ctx, id)
        if err != nil || (sc.UserID != uid && !c.GetBool("is_admin")) {
            c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
            return
        }
        msgs, err := loadThread(ctx, sc.ID)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        c.JSON(http.StatusOK, gin.H{"case": sc, "messages": msgs})
    }
}

type ReplyRequest struct {
    Body string `json:"body"`
}

// nextStatusOnReply: a reply to a resolved case reopens it; an admin
// picking up a fresh case moves it to in_progress.
func nextStatusOnReply(current string, admin bool) string {
    if current == "resolved" {
        return "in_progress"
    }
    if admin && current == "new" {
        return "in_progress"
    }
    return current
}

func ReplySupportCase() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        admin := c.GetBool("is_admin")
        id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
        var req ReplyRequest
        if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Body) == "" {
            c.JSON(http.StatusBadRequest, gin.H{"error": "body required"})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        sc, err := loadCase(ctx, id)
        if err != nil || (sc.UserID != uid && !admin) {
            c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
            return
        }
        var m models.SupportMessage
        err = database.Pool.QueryRow(ctx, `INSERT INTO support_messages(case_id, sender_id, from_admin, body)
VALUES($1,$2,$3,$4) RETURNING id, case_id, sender_id, from_admin, body, created_at`,
            sc.ID, uid, admin, strings.TrimSpace(req.Body)).
            Scan(&m.ID, &m.CaseID, &m.SenderID, &m.FromAdmin, &m.Body, &m.CreatedAt)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        status := nextStatusOnReply(sc.Status, admin)
        _, err = database.Pool.Exec(ctx, `UPDATE support_cases SET status=$1, updated_at=now() WHERE id=$2`, status, sc.ID)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        c.JSON(http.StatusOK, gin.H{"message": m, "status": status})
    }
}

func ListAnnouncements() gin.HandlerFunc {
    return func(c *gin.Context) {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        rows, err := database.Pool.Query(ctx, `SELECT id, title, body, published, created_by, created_at
FROM announcements WHERE published ORDER BY created_at DESC`)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        defer rows.Close()
        out := []models.Announcement{}
        for rows.Next() {
            var a models.Announcement
            rows.Scan(&a.ID, &a.Title, &a.Body, &a.Published, &a.CreatedBy, &a.CreatedAt)
            out = append(out, a)
        }
        c.JSON(http.StatusOK, gin.H{"items": out})
    }
}

// AdminListSupportCases is the triage queue: filterable, oldest update first.
func AdminListSupportCases() gin.HandlerFunc {
    return func(c *gin.Context) {
        status := c.Query("status")
        category := c.Query("category")
        if status != "" && !validStatuses[status] {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
            return
        }
        if category != "" && !validCategories[category] {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        rows, err := database.Pool.Query(ctx, `SELECT `+caseCols+` FROM support_cases
WHERE ($1 = '' OR status=$1) AND ($2 = '' OR category=$2)
ORDER BY updated_at`, status, category)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        defer rows.Close()
        out := []models.SupportCase{}
        for rows.Next() {
            sc, err := scanCase(rows)
            if err == nil {
                out = append(out, sc)
            }
        }
        c.JSON(http.StatusOK, gin.H{"items": out})
    }
}

type StatusRequest struct {
    Status string `json:"status"`
}

func AdminSetCaseStatus() gin.HandlerFunc {
    return func(c *gin.Context) {
        adminID := c.GetInt64("user_id")
        id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
        var req StatusRequest
        if err := c.ShouldBindJSON(&req); err != nil || !validStatuses[req.Status] {
            c.JSON(http.StatusBadRequest, gin.H{"error": "status must be new, in_progress or resolved"})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        sc, err := scanCase(database.Pool.QueryRow(ctx, `UPDATE support_cases
SET status=$1, assigned_to=COALESCE(assigned_to,$2), updated_at=now()
WHERE id=$3 RETURNING `+caseCols, req.Status, adminID, id))
        if err != nil {
            c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
            return
        }
        c.JSON(http.StatusOK, sc)
    }
}

// AdminSuggestReply drafts a support reply from the thread via Gemini.
// Degrades to 503 when no API key is configured.
func AdminSuggestReply(cfg config.Config) gin.HandlerFunc {
    return func(c *gin.Context) {
        if cfg.GeminiAPIKey == "" {
            c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai drafting not configured"})
            return
        }
        id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
        ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
        defer cancel()
        sc, err := loadCase(ctx, id)
        if err != nil {
            c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
            return
        }
        msgs, err := loadThread(ctx, sc.ID)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }

        var b strings.Builder
        b.WriteString("You are a support agent for a health tracking app. Draft a short, friendly reply to this ticket. Do not invent account details.\n")
        b.WriteString("Category: " + sc.Category + "\nSubject: " + sc.Subject + "\nThread:\n")
        for _, m := range msgs {
            who := "user"
            if m.FromAdmin {
                who = "agent"
            }
            b.WriteString(who + ": " + m.Body + "\n")
        }

        client, err := utils.NewAIClient(ctx, utils.AIConfig{APIKey: cfg.GeminiAPIKey, GenModel: cfg.GeminiModel})
        if err != nil {
            c.JSON(http.StatusBadGateway, gin.H{"error": "ai client error"})
            return
        }
        defer client.Close()
        draft, err := utils.GenerateText(ctx, client, cfg.GeminiModel, genai.Text(b.String()))
        if err != nil || draft == "" {
            c.JSON(http.StatusBadGateway, gin.H{"error": "ai draft failed"})
            return
        }
        c.JSON(http.StatusOK, gin.H{"draft": draft})
    }
}

type AnnouncementRequest struct {
    Title     string `json:"title"`
    Body      string `json:"body"`
    Published bool   `json:"published"`
}

func AdminCreateAnnouncement() gin.HandlerFunc {
    return func(c *gin.Context) {
        adminID := c.GetInt64("user_id")
        var req AnnouncementRequest
        if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
            c.JSON(http.StatusBadRequest, gin.H{"error": "title and body required"})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        var a models.Announcement
        err := database.Pool.QueryRow(ctx, `INSERT INTO announcements(title, body, published, created_by)
VALUES($1,$2,$3,$4) RETURNING id, title, body, published, created_by, created_at`,
            strings.TrimSpace(req.Title), strings.TrimSpace(req.Body), req.Published, adminID).
            Scan(&a.ID, &a.Title, &a.Body, &a.Published, &a.CreatedBy, &a.CreatedAt)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        c.JSON(http.StatusOK, a)
    }
}

func AdminUpdateAnnouncement() gin.HandlerFunc {
    return func(c *gin.Context) {
        id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
        var req AnnouncementRequest
        if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
            c.JSON(http.StatusBadRequest, gin.H{"error": "title and body required"})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        var a models.Announcement
        err := database.Pool.QueryRow(ctx, `UPDATE announcements SET title=$1, body=$2, published=$3
WHERE id=$4 RETURNING id, title, body, published, created_by, created_at`,
            strings.TrimSpace(req.Title), strings.TrimSpace(req.Body), req.Published, id).
            Scan(&a.ID, &a.Title, &a.Body, &a.Published, &a.CreatedBy, &a.CreatedAt)
        if err != nil {
            c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
            return
        }
        c.JSON(http.StatusOK, a)
    }
}
