package database

import (
    "context"
    "log"
)

// EnsureSchema creates required tables if they do not exist.
func EnsureSchema() {
    if Pool == nil { return }
    ctx := context.Background()

    stmts := []string{
        `CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            is_admin BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
        `CREATE TABLE IF NOT EXISTS profiles (
            user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
            display_name TEXT,
            birth_date DATE,
            sex TEXT, -- 'male' | 'female'
            height_cm NUMERIC,
            weight_kg NUMERIC,
            body_fat_pct NUMERIC,
            activity_level TEXT, -- sedentary|light|moderate|active|very_active
            goal_type TEXT,      -- lose|maintain|gain
            goal_weight_kg NUMERIC,
            goal_weeks INT,
            unit_system TEXT NOT NULL DEFAULT 'metric', -- metric|imperial
            onboarding_step INT NOT NULL DEFAULT 1,
            onboarding_complete BOOLEAN NOT NULL DEFAULT FALSE,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
        `CREATE TABLE IF NOT EXISTS calorie_targets (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            bmr NUMERIC NOT NULL,
            tdee NUMERIC NOT NULL,
            target_calories INT NOT NULL,
            weekly_change_kg NUMERIC NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
        `CREATE INDEX IF NOT EXISTS calorie_targets_user_idx ON calorie_targets(user_id, created_at DESC)`,
        `CREATE TABLE IF NOT EXISTS medication_logs (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            log_date DATE NOT NULL,
            name TEXT NOT NULL,
            dose_amount NUMERIC,
            dose_unit TEXT, -- mg|mcg|g|IU|ml|tablet|capsule|drop|spray|other
            taken BOOLEAN NOT NULL DEFAULT FALSE,
            notes TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
        `CREATE INDEX IF NOT EXISTS medication_logs_day_idx ON medication_logs(user_id, log_date)`,
        `CREATE TABLE IF NOT EXISTS support_cases (
            id BIGSERIAL PRIMARY KEY,
            ref TEXT NOT NULL UNIQUE,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            category TEXT NOT NULL, -- bug|account|billing|data|other
            subject TEXT NOT NULL,
            screenshot_url TEXT,
            status TEXT NOT NULL DEFAULT 'new', -- new|in_progress|resolved
            assigned_to BIGINT NULL REFERENCES users(id) ON DELETE SET NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
        `CREATE INDEX IF NOT EXISTS support_cases_user_idx ON support_cases(user_id, created_at DESC)`,
        `CREATE INDEX IF NOT EXISTS support_cases_triage_idx ON support_cases(status, updated_at)`,
        `CREATE TABLE IF NOT EXISTS support_messages (
            id BIGSERIAL PRIMARY KEY,
            case_id BIGINT NOT NULL REFERENCES support_cases(id) ON DELETE CASCADE,
            sender_id BIGINT NOT NULL,
            from_admin BOOLEAN NOT NULL DEFAULT FALSE,
            body TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
        `CREATE TABLE IF NOT EXISTS announcements (
            id BIGSERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            body TEXT NOT NULL,
            published BOOLEAN NOT NULL DEFAULT FALSE,
            created_by BIGINT NULL REFERENCES users(id) ON DELETE SET NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
    }

    for _, s := range stmts {
        if _, err := Pool.Exec(ctx, s); err != nil {
            log.Printf("schema ensure error: %v in stmt: %s", err, s)
        }
    }
}
