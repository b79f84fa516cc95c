package api

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

var validate = validator.New()

func checkTags(p any) error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.Newf("field %s failed %q", fe.Field(), fe.Tag())
		}
		return err
	}
	return nil
}

// Validate проверяет сообщение рукопожатия. Версию проверяет version.Compatible.
func (c ClientCommand) Validate() error { return checkTags(c) }

func (p InputPayload) Validate() error {
	if err := checkTags(p); err != nil {
		return err
	}
	if math.IsNaN(p.Wheel) || math.IsInf(p.Wheel, 0) {
		return errors.New("wheel must be finite")
	}
	if p.Key == "" && p.Wheel == 0 && !p.Drop && !p.Hide {
		return errors.New("input is empty")
	}
	return nil
}

func (p PosePayload) Validate() error {
	for _, v := range []Vec3{p.Position, p.Forward, p.Rotation} {
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return errors.New("pose must be finite")
			}
		}
	}
	return nil
}

func (p PickupPayload) Validate() error { return checkTags(p) }

func (p GivePayload) Validate() error { return checkTags(p) }

func (p GroupPayload) Validate() error { return checkTags(p) }

func (p SlotPayload) Validate() error { return checkTags(p) }
