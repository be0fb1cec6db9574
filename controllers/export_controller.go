package controllers

import (
    "context"
    "net/http"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/xuri/excelize/v2"
    "nutrilog/backend/database"
    "nutrilog/backend/models"
)

// ExportMedLogs writes the caller's medication log for a date range as an
// XLSX workbook. Defaults to the last 30 days when no range is given.
func ExportMedLogs() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        to := time.Now().Format("2006-01-02")
        from := time.Now().AddDate(0, 0, -30).Format("2006-01-02")
        if v := c.Query("from"); v != "" {
            d, err := parseDay(v)
            if err != nil {
                c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
                return
            }
            from = d
        }
        if v := c.Query("to"); v != "" {
            d, err := parseDay(v)
            if err != nil {
                c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
                return
            }
            to = d
        }
        if from > to {
            c.JSON(http.StatusBadRequest, gin.H{"error": "from is after to"})
            return
        }

        ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        rows, err := database.Pool.Query(ctx, `SELECT log_date::text, name, dose_amount::float8, dose_unit, taken, notes
FROM medication_logs WHERE user_id=$1 AND log_date BETWEEN $2 AND $3 ORDER BY log_date, id`, uid, from, to)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        defer rows.Close()

        f := excelize.NewFile()
        sheet := f.GetSheetName(0)
        _ = f.SetSheetRow(sheet, "A1", &[]any{"Date", "Name", "Dose", "Unit", "Taken", "Notes"})
        r := 2
        for rows.Next() {
            var m models.MedicationLog
            rows.Scan(&m.LogDate, &m.Name, &m.DoseAmount, &m.DoseUnit, &m.Taken, &m.Notes)
            var dose, unit, notes any
            if m.DoseAmount != nil { dose = *m.DoseAmount }
            if m.DoseUnit != nil { unit = *m.DoseUnit }
            if m.Notes != nil { notes = *m.Notes }
            cell, _ := excelize.CoordinatesToCellName(1, r)
            _ = f.SetSheetRow(sheet, cell, &[]any{m.LogDate, m.Name, dose, unit, m.Taken, notes})
            r++
        }

        buf, err := f.WriteToBuffer()
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
            return
        }
        name := "medication-log_" + from + "_" + to + ".xlsx"
        c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
        c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
    }
}
