package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/calo-work-stack/Calo-sub001/config"
	"github.com/calo-work-stack/Calo-sub001/models"
	"github.com/calo-work-stack/Calo-sub001/utils"
)

type ProfileInput struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Sex            string  `json:"sex"`
	Birthday       string  `json:"birthday"` // sent as YYYY-MM-DD
	Height         float64 `json:"height"`
	Weight         float64 `json:"weight"`
	ProfilePicture string  `json:"profile_picture"` // base64 data URI
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	result := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	age := 0
	if !user.Birthday.IsZero() {
		age = utils.CalculateAge(user.Birthday)
	}

	profile := map[string]interface{}{
		"id":              user.ID,
		"email":           user.Email,
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"sex":             user.Sex,
		"birthday":        user.Birthday.Format("2006-01-02"),
		"age":             age,
		"height":          user.Height,
		"weight":          user.Weight,
		"profile_picture": user.ProfilePicture,
		"mfa_enabled":     user.MFAEnabled,
		"onboarded":       user.Onboarded,
	}

	if bmi, err := utils.CalculateBMI(user.Height, user.Weight); err == nil {
		profile["bmi"] = bmi
		profile["bmi_category"] = utils.BMICategory(bmi)
	}

	return profile, nil
}

func UpdateUserProfile(userID uint, input ProfileInput) error {
	var user models.User
	result := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user)
	if result.Error != nil {
		return errors.New("user not found or disabled")
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Sex != "" {
		user.Sex = input.Sex
	}

	if input.Birthday != "" {
		birthday, err := time.Parse("2006-01-02", input.Birthday)
		if err == nil {
			user.Birthday = birthday
		}
	}

	if input.Height > 0 {
		user.Height = input.Height
	}
	if input.Weight > 0 {
		user.Weight = input.Weight
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64Image(input.ProfilePicture, "profile-pictures")
		if err != nil {
			return fmt.Errorf("failed to upload image: %w", err)
		}
		user.ProfilePicture = url
	}

	return config.DB.Save(&user).Error
}

func DeleteUser(userID uint) error {
	var user models.User
	result := config.DB.First(&user, userID)
	if result.Error != nil {
		return result.Error
	}
	user.Disabled = true
	return config.DB.Save(&user).Error
}
