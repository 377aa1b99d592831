package handlers

import (
	"github.com/kimianj/Continuum/internal/models"
	"github.com/kimianj/Continuum/internal/models/dto"
)

func userPayload(user models.User) dto.UserPayload {
	return dto.UserPayload{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsAdmin: user.IsAdmin,
	}
}
