package validator

import (
	"log"

	"yardwork_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Если правило не удалось зарегистрировать, приложение
			// не должно запускаться.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-user-kind': homeowner или companyowner
	mustRegister("is-user-kind", validateUserKind)

	// 'is-job-status': статус объявления валиден
	mustRegister("is-job-status", validateJobStatus)

	// 'is-bid-status': статус ставки валиден
	mustRegister("is-bid-status", validateBidStatus)
}

// --- Функции валидации ---

func validateUserKind(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	switch models.UserKind(value) {
	case models.UserKindHomeowner, models.UserKindCompanyOwner:
		return true
	default:
		return false
	}
}

func validateJobStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	// "closed" принимается как legacy-алиас терминального статуса
	switch models.JobStatus(value) {
	case models.JobStatusOpen, models.JobStatusInProgress, models.JobStatusCompleted, models.JobStatusClosedAlias:
		return true
	default:
		return false
	}
}

func validateBidStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.BidStatus(value) {
	case models.BidStatusPending, models.BidStatusAccepted, models.BidStatusRejected, models.BidStatusCompleted:
		return true
	default:
		return false
	}
}
