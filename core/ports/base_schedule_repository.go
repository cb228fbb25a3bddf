package ports

import "github.com/claritycare/roster-engine/core/domain"

type BaseScheduleRepository interface {
	List() ([]*domain.BaseSchedule, error)
	GetForWeekday(weekday domain.Weekday) (*domain.BaseSchedule, error)
}
