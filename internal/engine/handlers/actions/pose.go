package actions

import (
	"armory-server/internal/domain"
	"armory-server/internal/engine/handlers"
	"armory-server/pkg/api"
)

// HandlePose обновляет положение игрока. Из него берется точка выброса
// и радиус подбора.
func HandlePose(ctx handlers.Context, p api.PosePayload) (handlers.Result, error) {
	ctx.Body.SetPose(domain.Pose{
		Position: vec(p.Position),
		Forward:  vec(p.Forward),
		Rotation: vec(p.Rotation),
	})
	return handlers.EmptyResult(), nil
}

func vec(v api.Vec3) domain.Vec3 { return domain.Vec3{X: v.X, Y: v.Y, Z: v.Z} }
