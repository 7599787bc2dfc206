package models

// User - общая запись пользователя. Вместо двух несвязанных типов
// (Homeowner/CompanyOwner) используется размеченное объединение: поле Kind
// определяет вариант, потребители ветвятся по нему исчерпывающе.
type User struct {
	BaseModel
	Kind         UserKind `gorm:"not null;index" json:"kind"`
	Email        string   `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Name         string   `gorm:"not null" json:"name"`
	Phone        *string  `json:"phone,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"` // ссылка на профильное фото (загрузка - внешний сервис)

	// Поля варианта companyowner; для homeowner остаются пустыми
	CompanyName *string  `json:"company_name,omitempty"`
	Rating      *float64 `json:"rating,omitempty"` // средний рейтинг по отзывам
}

// IsHomeowner - true для варианта homeowner
func (u *User) IsHomeowner() bool {
	return u.Kind == UserKindHomeowner
}

// IsCompanyOwner - true для варианта companyowner
func (u *User) IsCompanyOwner() bool {
	return u.Kind == UserKindCompanyOwner
}
