package converter

import (
	"github.com/samber/lo"

	"github.com/you-humble/colixy-dashboard/internal/client/http/backend/dto"
	"github.com/you-humble/colixy-dashboard/internal/model"
)

func UsersToModel(src []dto.User) []model.User {
	return lo.Map(src, func(u dto.User, _ int) model.User {
		return UserToModel(u)
	})
}

func UserToModel(u dto.User) model.User {
	return model.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Telephone,
		Role:      model.Role(u.Role),
		LastLogin: u.LastLogin,
	}
}

// UserInputToDTO drops the confirmation; an empty password is omitted on the wire.
func UserInputToDTO(in model.UserInput) dto.UserWrite {
	return dto.UserWrite{
		Name:      in.Name,
		Email:     in.Email,
		Telephone: in.Phone,
		Role:      string(in.Role),
		Password:  in.Password,
	}
}

func ProfileToDTO(in model.ProfileInput) dto.Profile {
	return dto.Profile{
		Name:      in.Name,
		Email:     in.Email,
		Telephone: in.Phone,
	}
}
