package factori_test

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/toejough/factori"
)

type Vehicle struct {
	NumberWheels uint8
	Electric     bool
}

type Passenger struct {
	Name string
}

type Garage struct {
	Vehicles []Vehicle
}

type User struct {
	ID   string
	Name string
	Age  uint8
}

//nolint:gochecknoinits // Factories are registered once for the whole test binary
func init() {
	factori.Define[Vehicle]().
		Default("NumberWheels", 4).
		Default("Electric", false).
		Mixin("bike", factori.Set("NumberWheels", 2)).
		Mixin("trike", factori.Set("NumberWheels", 3)).
		Mixin("electric", factori.Set("Electric", true)).
		MustRegister()

	factori.Define[Passenger]().
		Default("Name", "Michael").
		MustRegister()

	factori.Define[Garage]().
		Default("Vehicles", factori.Lazy(func() any { return factori.MustCreateVec[Vehicle](3) })).
		MustRegister()

	factori.Define[User]().
		Default("ID", factori.Lazy(func() any { return uuid.NewString() })).
		Default("Name", "Richard").
		Default("Age", 42).
		Transient("DoubleAge", false).
		Builder(func(attrs factori.Attrs) (User, error) {
			age, err := factori.GetAs[int](attrs, "Age")
			if err != nil {
				return User{}, err
			}

			if factori.Get[bool](attrs, "DoubleAge") {
				age *= 2
			}

			if age > 255 {
				return User{}, fmt.Errorf("age %d does not fit", age)
			}

			return User{
				ID:   factori.Get[string](attrs, "ID"),
				Name: factori.Get[string](attrs, "Name"),
				Age:  uint8(age),
			}, nil
		}).
		MustRegister()
}
