// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
//   - base.go: BaseModel shared by every row type
//   - section.go: homepage sections, one row per section
//   - page.go: landing pages, blog posts and coded pages; sections are embedded as JSON
//   - site.go: flat collections (clients, team, services, testimonials, funnel, portfolio)
//   - singleton.go: single-document settings collections
//   - submission.go: contact messages and quote requests
//   - identity.go: dashboard accounts
package models
