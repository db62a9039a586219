package persistence

import (
	"fmt"

	"github.com/atedres/boldnet-sub000/internal/domain/page"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// PageKinds lists every page kind with its own table
var PageKinds = []page.Kind{page.KindLanding, page.KindBlog, page.KindCoded}

// AutoMigrate creates or updates every table from the persistence models.
// Postgres deployments run the SQL files under migrations/ instead; this is
// used for sqlite development databases and tests.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.SectionModel{},
		&models.ClientModel{},
		&models.TeamMemberModel{},
		&models.ServiceModel{},
		&models.TestimonialModel{},
		&models.FunnelStepModel{},
		&models.PortfolioItemModel{},
		&models.SingletonModel{},
		&models.ContactSubmissionModel{},
		&models.QuoteRequestModel{},
		&models.AdminUserModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, kind := range PageKinds {
		table := kind.Collection()
		if err := db.Table(table).AutoMigrate(&models.PageModel{}); err != nil {
			return fmt.Errorf("auto migrate %s: %w", table, err)
		}
		for _, col := range []string{"slug", "created_at"} {
			stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (%s)", table, col, table, col)
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index %s.%s: %w", table, col, err)
			}
		}
	}
	return nil
}
