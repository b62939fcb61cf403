package testhelpers

import (
	g "github.com/onsi/gomega"
	"gorm.io/gorm"
)

// CleanupDB empties the diaries table between specs.
func CleanupDB(db *gorm.DB) {
	var exists bool

	err := db.Raw("SELECT EXISTS (SELECT 1 FROM pg_tables WHERE schemaname = 'public' AND tablename = 'diaries')").Scan(&exists).Error
	g.Expect(err).NotTo(g.HaveOccurred())

	if !exists {
		return
	}

	err = db.Exec(`TRUNCATE TABLE "diaries" RESTART IDENTITY CASCADE`).Error
	g.Expect(err).NotTo(g.HaveOccurred(), "Failed to truncate table: diaries")
}
