package server

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-block-pathtracer/pkg/core"
	"github.com/df07/go-block-pathtracer/pkg/geometry"
	"github.com/df07/go-block-pathtracer/pkg/integrator"
	"github.com/df07/go-block-pathtracer/pkg/material"
	"github.com/df07/go-block-pathtracer/pkg/scene"
)

// InspectResponse describes the first surface seen through a pixel
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// colorSourceInfo describes a texture or solid color
func colorSourceInfo(source material.ColorSource) interface{} {
	switch src := source.(type) {
	case *material.SolidColor:
		return hexColor(src.Color)
	case *material.CheckerTexture:
		return map[string]interface{}{
			"type":  "checker",
			"even":  colorSourceInfo(src.Even),
			"odd":   colorSourceInfo(src.Odd),
			"scale": src.Scale,
		}
	default:
		return "unknown"
	}
}

// extractMaterialInfo names a material and lists its parameters
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = colorSourceInfo(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		return "dielectric", properties

	case *material.DiffuseLight:
		properties["emission"] = colorSourceInfo(m.Emission)
		return "diffuse_light", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo names a shape and lists its parameters
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.MovingSphere:
		properties["center0"] = vecArray(geom.Center0)
		properties["center1"] = vecArray(geom.Center1)
		properties["time0"] = geom.Time0
		properties["time1"] = geom.Time1
		properties["radius"] = geom.Radius
		return "moving_sphere", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the unjittered ray through pixel (x, y), y counted
// from the top, and returns the nearest hit with the shape that produced it
func inspectPixel(prepared *preparedScene, x, y int) (*material.HitRecord, geometry.Shape, bool) {
	width, height := prepared.config.Width, prepared.config.Height
	s := float64(x) / math.Max(float64(width-1), 1)
	t := float64(height-1-y) / math.Max(float64(height-1), 1)

	sampler := core.NewRandomSampler(rand.New(rand.NewSource(0)))
	ray := prepared.camera.GetRay(s, t, sampler)

	hit, isHit := prepared.world.Hit(ray, integrator.HitEpsilon, math.Inf(1))
	if !isHit {
		return nil, nil, false
	}

	// The BVH only returns the hit record; find the shape with the same t
	for _, shape := range prepared.scene.Shapes {
		if shapeHit, ok := shape.Hit(ray, integrator.HitEpsilon, hit.T+integrator.HitEpsilon); ok && shapeHit.T == hit.T {
			return hit, shape, true
		}
	}
	return hit, nil, true
}

// handleInspect reports what the camera sees through one pixel
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()
	req, err := parseRenderRequest(values)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	prepared, err := prepareScene(req)
	if errors.Is(err, scene.ErrUnknownScene) {
		return errorJSON(c, http.StatusNotFound, err.Error())
	} else if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	x, err := parseIntParam(values, "x", -1, 0, prepared.config.Width-1)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	y, err := parseIntParam(values, "y", -1, 0, prepared.config.Height-1)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	if x < 0 || y < 0 {
		return errorJSON(c, http.StatusBadRequest, "x and y are required")
	}

	hit, shape, ok := inspectPixel(prepared, x, y)
	if !ok {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	materialType, materialProps := extractMaterialInfo(hit.Material)
	geometryType, geometryProps := extractGeometryInfo(shape)

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
