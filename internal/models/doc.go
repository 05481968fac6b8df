// Package models defines the core domain models for bitelog.
//
// # Models
//
//   - FoodLogEntry: one logged intake event, the only persisted entity
//   - Nutrition: an ephemeral nutrient vector (per-100g or absolute)
//   - DailySummary: per-date aggregate of entries
//
// Users are identified by an optional free-form id string (no accounts).
// A Food catalog entity is deliberately absent; entries denormalize the
// resolved name and nutrient values so they stay valid if the external
// lookup data changes later.
package models
