package config

import (
	"log"

	"biblioteca-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedBooks(); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedBooks inserts the sample catalog when the books table is empty
func (s *Seeder) seedBooks() error {
	var count int64
	if err := s.db.Model(&models.Book{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("📚 Book catalog already seeded")
		return nil
	}

	books := []models.Book{
		{Title: "Férias sem fim", Author: "Estanislau Melo", ISBN: "978-0123456789", TotalCopies: 3, AvailableCopies: 3, Category: category("turismo")},
		{Title: "Aventuras na Programação", Author: "Maria Silva", ISBN: "978-0987654321", TotalCopies: 2, AvailableCopies: 2, Category: category("tecnologia")},
		{Title: "História do Brasil", Author: "João Santos", ISBN: "978-1122334455", TotalCopies: 4, AvailableCopies: 4, Category: category("história")},
		{Title: "Matemática Divertida", Author: "Ana Costa", ISBN: "978-5566778899", TotalCopies: 2, AvailableCopies: 2, Category: category("educação")},
		{Title: "Receitas da Vovó", Author: "Carmem Oliveira", ISBN: "978-9988776655", TotalCopies: 1, AvailableCopies: 1, Category: category("culinária")},
	}

	if err := s.db.Create(&books).Error; err != nil {
		return err
	}

	log.Printf("📚 Seeded %d sample books", len(books))
	return nil
}

func category(name string) *string {
	return &name
}
