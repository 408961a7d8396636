package models

import (
	"gorm.io/gorm"
)

type Doctor struct {
	gorm.Model
	Name      string `json:"name"`
	Email     string `json:"email"`
	Specialty string `json:"specialty"`
	ImageURL  string `json:"image_url"`
}
