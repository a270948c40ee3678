package postgres

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE TEAMS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create teams table
-- Version: 001

CREATE TABLE IF NOT EXISTS teams (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name VARCHAR(255) NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    total_points INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT teams_valid_points CHECK (total_points >= 0)
);

-- Leaderboard reads sort by total points
CREATE INDEX IF NOT EXISTS idx_teams_total_points ON teams(total_points DESC, id ASC);
`

const migration001Down = `
DROP TABLE IF EXISTS teams;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: CREATE PROFILES
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
-- Migration: Create profiles table
-- Version: 002

CREATE TABLE IF NOT EXISTS profiles (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name VARCHAR(255) NOT NULL,
    age INTEGER NOT NULL,
    grade VARCHAR(10) NOT NULL DEFAULT '',
    team_id UUID REFERENCES teams(id) ON DELETE SET NULL,
    total_points INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT profiles_valid_age CHECK (age > 0),
    CONSTRAINT profiles_valid_points CHECK (total_points >= 0)
);

CREATE INDEX IF NOT EXISTS idx_profiles_team_id ON profiles(team_id);
CREATE INDEX IF NOT EXISTS idx_profiles_name ON profiles(LOWER(name));

-- Leaderboard reads sort by total points with ID as the tie-break
CREATE INDEX IF NOT EXISTS idx_profiles_total_points ON profiles(total_points DESC, id ASC);
`

const migration002Down = `
DROP TABLE IF EXISTS profiles;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 003: CREATE ACTIVITIES
// ══════════════════════════════════════════════════════════════════════════════

const migration003Up = `
-- Migration: Create activities table
-- Version: 003

CREATE TABLE IF NOT EXISTS activities (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    profile_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    category VARCHAR(30) NOT NULL,
    duration_minutes INTEGER NOT NULL,
    distance_km DOUBLE PRECISION,
    calories INTEGER,
    date TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    points INTEGER NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT activities_valid_duration CHECK (duration_minutes > 0),
    CONSTRAINT activities_valid_distance CHECK (distance_km IS NULL OR distance_km >= 0),
    CONSTRAINT activities_valid_points CHECK (points >= 0)
);

CREATE INDEX IF NOT EXISTS idx_activities_profile_id ON activities(profile_id);
CREATE INDEX IF NOT EXISTS idx_activities_date ON activities(date DESC);

-- Suggestion and summary queries scan one profile's recent history
CREATE INDEX IF NOT EXISTS idx_activities_profile_date ON activities(profile_id, date DESC);
`

const migration003Down = `
DROP TABLE IF EXISTS activities;
`
