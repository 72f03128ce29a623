package migrations

import (
	"log"

	"nursery_manager/internal/database"
	"nursery_manager/internal/models"
	"nursery_manager/internal/repository"

	"gorm.io/gorm"
)

// RunMigrations creates the schema and seeds the reference data every
// deployment needs (container formats, the cooperative's own nursery).
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	if err := createDefaultData(db); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func createDefaultData(db *gorm.DB) error {
	log.Println("Creating default data...")

	nurseryRepo := repository.NewNurseryRepository(db)
	containerRepo := repository.NewContainerRepository(db)

	existing, err := nurseryRepo.GetAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Println("Default data already present")
		return nil
	}

	mainNursery := &models.Nursery{
		Name:        "Pépinière principale",
		NurseryType: string(models.NurseryOwn),
		Integration: string(models.IntegrationPlatform),
		City:        "Nantes",
	}
	if err := nurseryRepo.Create(mainNursery); err != nil {
		log.Printf("Warning: Failed to create default nursery: %v", err)
	}

	volume := func(v float64) *float64 { return &v }
	containers := []models.Container{
		{Name: "Godet 8cm", ShortName: "G8", SortOrder: 1, VolumeLiters: volume(0.3)},
		{Name: "Pot 1L", ShortName: "P1", SortOrder: 2, VolumeLiters: volume(1)},
		{Name: "Pot 3L", ShortName: "P3", SortOrder: 3, VolumeLiters: volume(3)},
		{Name: "Racines nues", ShortName: "RN", SortOrder: 4},
	}
	for i := range containers {
		if err := containerRepo.Create(&containers[i]); err != nil {
			log.Printf("Warning: Failed to create container %s: %v", containers[i].Name, err)
		}
	}

	log.Println("Default data created successfully!")
	return nil
}
