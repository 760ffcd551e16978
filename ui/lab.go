package ui

import "github.com/simfoundry/simkit/property"

// Thermal model constants. The chamber pressure is derived from the
// temperature and heater power; opening the vent relieves half of it.
const (
	basePressure     = 20.0
	tempCoefficient  = 1.5
	powerCoefficient = 0.04
	ventReliefFactor = 0.5
)

// lab is the simulated thermal chamber the demo widgets control. The
// pressure property is derived; it follows temperature, heater power
// and the vent state through property listeners.
type lab struct {
	temperature *property.Number         // °C
	heaterPower *property.Number         // watts
	pressure    *property.Number         // kPa, derived
	vent        *property.Property[bool] // open = relieved
}

func newLab() (*lab, error) {
	temperature, err := property.NewNumber(20, 0, 100, 1)
	if err != nil {
		return nil, err
	}
	heaterPower, err := property.NewNumber(500, 0, 2000, 50)
	if err != nil {
		return nil, err
	}
	pressure, err := property.NewNumber(0, 0, 250, 1)
	if err != nil {
		return nil, err
	}

	l := &lab{
		temperature: temperature,
		heaterPower: heaterPower,
		pressure:    pressure,
		vent:        property.New(false),
	}

	l.temperature.Listen(func(_, _ float64) { l.recompute() })
	l.heaterPower.Listen(func(_, _ float64) { l.recompute() })
	l.vent.Listen(func(_, _ bool) { l.recompute() })
	l.recompute()

	return l, nil
}

func (l *lab) recompute() {
	l.pressure.Set(derivedPressure(l.temperature.Get(), l.heaterPower.Get(), l.vent.Get()))
}

// derivedPressure maps chamber inputs to kPa.
func derivedPressure(temperature, power float64, vented bool) float64 {
	p := basePressure + temperature*tempCoefficient + power*powerCoefficient
	if vented {
		p *= ventReliefFactor
	}
	return p
}
