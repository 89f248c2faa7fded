package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// JSON — произвольное JSON-значение, хранимое в колонке jsonb.
// Реализует driver.Valuer и sql.Scanner, чтобы GORM мог читать и писать его напрямую.
type JSON json.RawMessage

func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

func (j *JSON) Scan(src interface{}) error {
	if src == nil {
		*j = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
		return nil
	case string:
		*j = JSON(v)
		return nil
	default:
		return errors.New("domain: неподдерживаемый тип для JSON колонки")
	}
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	*j = append((*j)[0:0], data...)
	return nil
}

// Profile представляет строку портфолио пользователя,
// соответствует таблице profiles в бд. ID профиля всегда равен ID владельца:
// собственного жизненного цикла у строки нет.
type Profile struct {
	ID             uuid.UUID `json:"id" gorm:"primaryKey"`
	FullName       *string   `json:"full_name"`
	Description    *string   `json:"description"`
	Email          *string   `json:"email"`
	PrimaryPhone   *string   `json:"primary_phone"`
	SecondaryPhone *string   `json:"secondary_phone"`
	Location       *string   `json:"location"`
	Website        *string   `json:"website"`
	Linkedin       *string   `json:"linkedin"`
	Github         *string   `json:"github"`
	LogoInitials   *string   `json:"logo_initials"`
	OpenToWork     bool      `json:"open_to_work"`
	CurrentTheme   *string   `json:"currenttheme" gorm:"column:currenttheme"`
	Themes         JSON      `json:"themes" gorm:"type:jsonb"`
	Skills         JSON      `json:"skills" gorm:"type:jsonb"`
	Experiences    JSON      `json:"experiences" gorm:"type:jsonb"`
	AvatarURL      *string   `json:"avatar_url"`
	ResumeURL      *string   `json:"resume_url"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
