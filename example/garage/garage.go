// Package garage is a small fixture domain built with factori. The override helpers in
// the generated_*Fields.go files come from factorigen.
package garage

import (
	"github.com/google/uuid"
	"github.com/toejough/factori"
)

//go:generate factorigen Vehicle
//go:generate factorigen Passenger --lazy

// Passenger rides in a Vehicle.
type Passenger struct {
	ID   uuid.UUID
	Name string
}

// Vehicle is the subject of most fixtures in this package.
type Vehicle struct {
	NumberWheels uint8
	Electric     bool
	Driver       *Passenger
}

// Register adds the garage factories to reg.
func Register(reg *factori.Registry) error {
	err := factori.Define[Passenger]().
		Default("ID", factori.Lazy(func() any { return uuid.New() })).
		Default("Name", "Michael").
		RegisterIn(reg)
	if err != nil {
		return err
	}

	return factori.Define[Vehicle]().
		Default("NumberWheels", 4).
		Default("Electric", false).
		Default("Driver", factori.Lazy(func() any {
			driver, err := factori.CreateIn[Passenger](reg)
			if err != nil {
				panic(err)
			}

			return &driver
		})).
		Mixin("bike", VehicleNumberWheels(2)).
		Mixin("trike", VehicleNumberWheels(3)).
		Mixin("electric", VehicleElectric(true)).
		RegisterIn(reg)
}
