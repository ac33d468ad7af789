package order

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// CargoType classifies the goods being moved.
type CargoType string

const (
	CargoGeneral      CargoType = "GENERAL"
	CargoFragile      CargoType = "FRAGILE"
	CargoHazardous    CargoType = "HAZARDOUS"
	CargoLivestock    CargoType = "LIVESTOCK"
	CargoRefrigerated CargoType = "REFRIGERATED"
	CargoBulk         CargoType = "BULK"
	CargoConstruction CargoType = "CONSTRUCTION"
	CargoElectronics  CargoType = "ELECTRONICS"
)

var validCargoTypes = map[CargoType]bool{
	CargoGeneral:      true,
	CargoFragile:      true,
	CargoHazardous:    true,
	CargoLivestock:    true,
	CargoRefrigerated: true,
	CargoBulk:         true,
	CargoConstruction: true,
	CargoElectronics:  true,
}

// Validate checks that the CargoType is a defined enum member.
func (t CargoType) Validate() error {
	if !validCargoTypes[t] {
		return errs.NewValueIsInvalidErrorWithCause("cargo type is invalid",
			fmt.Errorf("'%s' is not a valid cargo type", string(t)))
	}
	return nil
}

// ErrCargoIsNotConstructed is returned when a Cargo value was not created via
// NewCargo.
var ErrCargoIsNotConstructed = errs.NewValueIsRequiredError(
	"cargo must be created via NewCargo constructor")

// Cargo describes what is being shipped: type, free-text description, weight,
// optional volume and piece count. Immutable value object.
type Cargo struct { //nolint:recvcheck //using for validation
	cargoType   CargoType
	description string
	weightKg    float64
	volumeM3    *float64
	quantity    int

	guard guard.ConstructorGuard
}

// NewCargo creates a validated Cargo. An empty cargo type defaults to
// GENERAL. Weight must be positive, volume (when given) must be positive,
// and quantity must be at least 1.
func NewCargo(cargoType CargoType, description string, weightKg float64, volumeM3 *float64, quantity int) (Cargo, error) {
	if cargoType == "" {
		cargoType = CargoGeneral
	}

	c := Cargo{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setType(cargoType),
		c.setDescription(description),
		c.setWeightKg(weightKg),
		c.setVolumeM3(volumeM3),
		c.setQuantity(quantity),
	); err != nil {
		return Cargo{}, err
	}

	return c, nil
}

// Validate checks that the Cargo was created through the constructor.
func (c Cargo) Validate() error {
	return c.guard.Validate(ErrCargoIsNotConstructed)
}

// Type returns the cargo classification.
func (c Cargo) Type() CargoType {
	return c.cargoType
}

// Description returns the free-text cargo description.
func (c Cargo) Description() string {
	return c.description
}

// WeightKg returns the cargo weight in kilograms.
func (c Cargo) WeightKg() float64 {
	return c.weightKg
}

// VolumeM3 returns the cargo volume in cubic meters, nil when unknown.
func (c Cargo) VolumeM3() *float64 {
	return c.volumeM3
}

// Quantity returns the number of pieces.
func (c Cargo) Quantity() int {
	return c.quantity
}

func (c *Cargo) setType(t CargoType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.cargoType = t
	return nil
}

func (c *Cargo) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("cargo description")
	}
	c.description = description
	return nil
}

func (c *Cargo) setWeightKg(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			fmt.Errorf("%f is not greater than 0", weightKg))
	}
	c.weightKg = weightKg
	return nil
}

func (c *Cargo) setVolumeM3(volumeM3 *float64) error {
	if volumeM3 != nil && *volumeM3 <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("volume is invalid",
			fmt.Errorf("%f is not greater than 0", *volumeM3))
	}
	c.volumeM3 = volumeM3
	return nil
}

func (c *Cargo) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not at least 1", quantity))
	}
	c.quantity = quantity
	return nil
}
