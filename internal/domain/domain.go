package domain

import (
	"github.com/pactfit/pactfit-backend/internal/domain/auth"
	"github.com/pactfit/pactfit-backend/internal/domain/contract"
	"github.com/pactfit/pactfit-backend/internal/domain/user"
	"github.com/pactfit/pactfit-backend/internal/domain/workout"
)

type User = user.User
type UserToken = auth.UserToken

type Contract = contract.Contract
type ContractStatus = contract.Status
type Schedule = contract.Schedule
type ScheduleType = contract.ScheduleType

type Workout = workout.Workout
type DayStatus = workout.DayStatus
type WorkoutStats = workout.Stats

const (
	ContractPending  = contract.StatusPending
	ContractAccepted = contract.StatusAccepted
	ContractDeclined = contract.StatusDeclined
	ContractDeleted  = contract.StatusDeleted

	ScheduleSpecific = contract.ScheduleSpecific
	ScheduleFlexible = contract.ScheduleFlexible
)
