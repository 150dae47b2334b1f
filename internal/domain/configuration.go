package domain

import (
	"errors"
	"fmt"
)

type PillboxType string

const (
	Weekly  PillboxType = "weekly"
	Monthly PillboxType = "monthly"
)

type DoseSchedule string

const (
	Morning    DoseSchedule = "morning"
	Night      DoseSchedule = "night"
	ThreeTimes DoseSchedule = "three-times"
)

type LightOption string

const (
	WithLight    LightOption = "with-light"
	WithoutLight LightOption = "without-light"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

// Configuration is the set of choices made in the configurator before adding to cart.
type Configuration struct {
	PillboxType  PillboxType  `json:"pillbox_type"`
	DoseSchedule DoseSchedule `json:"dose_schedule"`
	LightOption  LightOption  `json:"light_option"`
}

// DefaultConfiguration is what the configurator shows before any choice is made.
func DefaultConfiguration() Configuration {
	return Configuration{
		PillboxType:  Weekly,
		DoseSchedule: Morning,
		LightOption:  WithLight,
	}
}

func (c Configuration) Validate() error {
	switch c.PillboxType {
	case Weekly, Monthly:
	default:
		return fmt.Errorf("%w: unknown pillbox type %q", ErrInvalidConfiguration, c.PillboxType)
	}
	switch c.DoseSchedule {
	case Morning, Night, ThreeTimes:
	default:
		return fmt.Errorf("%w: unknown dose schedule %q", ErrInvalidConfiguration, c.DoseSchedule)
	}
	switch c.LightOption {
	case WithLight, WithoutLight:
	default:
		return fmt.Errorf("%w: unknown light option %q", ErrInvalidConfiguration, c.LightOption)
	}
	return nil
}

// Labels holds the storefront display text for a configuration.
type Labels struct {
	PillboxType  string `json:"pillbox_type"`
	DoseSchedule string `json:"dose_schedule"`
	LightOption  string `json:"light_option"`
}

var (
	pillboxTypeLabels = map[PillboxType]string{
		Weekly:  "Semanal",
		Monthly: "Mensual",
	}
	doseScheduleLabels = map[DoseSchedule]string{
		Morning:    "Mañana",
		Night:      "Noche",
		ThreeTimes: "Mañana, mediodía y noche",
	}
	lightOptionLabels = map[LightOption]string{
		WithLight:    "Con luz",
		WithoutLight: "Sin luz",
	}
)

func (c Configuration) Labels() Labels {
	return Labels{
		PillboxType:  pillboxTypeLabels[c.PillboxType],
		DoseSchedule: doseScheduleLabels[c.DoseSchedule],
		LightOption:  lightOptionLabels[c.LightOption],
	}
}

// Option is a single choice inside a configurator group.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func PillboxTypeOptions() []Option {
	return []Option{
		{Value: string(Weekly), Label: pillboxTypeLabels[Weekly]},
		{Value: string(Monthly), Label: pillboxTypeLabels[Monthly]},
	}
}

func DoseScheduleOptions() []Option {
	return []Option{
		{Value: string(Morning), Label: doseScheduleLabels[Morning]},
		{Value: string(Night), Label: doseScheduleLabels[Night]},
		{Value: string(ThreeTimes), Label: doseScheduleLabels[ThreeTimes]},
	}
}

func LightOptionOptions() []Option {
	return []Option{
		{Value: string(WithLight), Label: lightOptionLabels[WithLight]},
		{Value: string(WithoutLight), Label: lightOptionLabels[WithoutLight]},
	}
}
