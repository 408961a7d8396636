package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/doctorsportal/server/middleware"
	"github.com/doctorsportal/server/models"
	"github.com/doctorsportal/server/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(database *gorm.DB) *UserController {
	return &UserController{DB: database}
}

// IssueToken signs a 24h access token for a known user. Unknown emails
// get 403 with an empty token.
func (uc *UserController) IssueToken(c *fiber.Ctx) error {
	email := c.Query("email")

	var user models.User
	if err := uc.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"accessToken": "",
		})
	}

	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(middleware.Secret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"accessToken": signed,
	})
}

// GetUsers lists users, newest first. Admin only.
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Order("id desc").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch users",
			Error:   err.Error(),
		})
	}
	for i := range users {
		users[i].Password = ""
	}
	return c.JSON(users)
}

// CreateUser registers a user. The password is optional; when supplied
// it is stored bcrypt-hashed.
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	user := new(models.User)
	if err := c.BodyParser(user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if user.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	if user.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to hash password",
			})
		}
		user.Password = string(hashed)
	}
	user.Role = ""

	if err := uc.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "User with this email already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create user",
			Error:   err.Error(),
		})
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(user)
}

// PromoteUser sets a user's role to admin. Admin only.
func (uc *UserController) PromoteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	result := uc.DB.Model(&models.User{}).Where("id = ?", id).Update("role", models.RoleAdmin)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to promote user",
			Error:   result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	return c.JSON(fiber.Map{
		"acknowledged":  true,
		"modifiedCount": result.RowsAffected,
	})
}

// CheckAdmin reports whether an email belongs to an admin.
func (uc *UserController) CheckAdmin(c *fiber.Ctx) error {
	email := c.Params("email")
	var user models.User
	err := uc.DB.Where("email = ?", email).First(&user).Error
	return c.JSON(fiber.Map{
		"isAdmin": err == nil && user.IsAdmin(),
	})
}
