package repository

import "lucai-go/internal/model"

func strPtr(s string) *string { return &s }

// DefaultSeedUsers 是首次启动时写入空表的固定用户。
func DefaultSeedUsers() []model.User {
	return []model.User{
		{Name: "Ana Martínez", Email: "ana.martinez@lucai.bio", Organization: strPtr("LUCAI"), Role: strPtr("Research Lead")},
		{Name: "Bruno Silva", Email: "bruno.silva@lucai.bio", Organization: strPtr("LUCAI"), Role: strPtr("Bioinformatician")},
		{Name: "Carla Gómez", Email: "carla.gomez@lucai.bio", Organization: strPtr("Acme Biotech"), Role: strPtr("Partner Scientist")},
	}
}
