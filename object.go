// SPDX-License-Identifier: MIT
package mission

import (
	"fmt"
	"reflect"
	"strings"

	goreflect "github.com/goccy/go-reflect"
	"github.com/mitchellh/mapstructure"

	"gitlab.com/fisherprime/mission/types"
)

type (
	// Class names a known element class.
	Class string

	// Object is a typed view of an [Element], obtained through [Element.Object].
	//
	// The set of implementations is closed; unknown classes decode to [Unrecognized].
	Object interface {
		Class() Class
		Header() *Base

		sealed()
	}

	// Vector is a space separated list of numbers, e.g. a position or a color.
	Vector []float64

	// Base holds the header of every Object.
	Base struct {
		Tag      string   `mis:"-"`
		Name     string   `mis:"-"`
		Inherits string   `mis:"-"`
		Element  *Element `mis:"-"`
	}

	// Transform holds the placement fields of scene objects.
	Transform struct {
		Position Vector `mis:"position"`
		Rotation Vector `mis:"rotation"`
		Scale    Vector `mis:"scale"`
	}

	SimGroup struct {
		Base `mis:",squash"`
	}

	// ScriptObject carries arbitrary script fields, e.g. MissionInfo.
	ScriptObject struct {
		Base   `mis:",squash"`
		Fields types.FieldMap `mis:"-"`
	}

	MissionArea struct {
		Base               `mis:",squash"`
		Area               Vector  `mis:"area"`
		FlightCeiling      float64 `mis:"flightCeiling"`
		FlightCeilingRange float64 `mis:"flightCeilingRange"`
	}

	Sky struct {
		Base            `mis:",squash"`
		Transform       `mis:",squash"`
		MaterialList    string  `mis:"materialList"`
		FogColor        Vector  `mis:"fogColor"`
		SkySolidColor   Vector  `mis:"skySolidColor"`
		VisibleDistance float64 `mis:"visibleDistance"`
		FogDistance     float64 `mis:"fogDistance"`
		UseSkyTextures  bool    `mis:"useSkyTextures"`
	}

	Sun struct {
		Base      `mis:",squash"`
		Direction Vector `mis:"direction"`
		Color     Vector `mis:"color"`
		Ambient   Vector `mis:"ambient"`
	}

	InteriorInstance struct {
		Base              `mis:",squash"`
		Transform         `mis:",squash"`
		InteriorFile      string `mis:"interiorFile"`
		ShowTerrainInside bool   `mis:"showTerrainInside"`
	}

	StaticShape struct {
		Base      `mis:",squash"`
		Transform `mis:",squash"`
		DataBlock string `mis:"dataBlock"`
	}

	// Item is a pickup such as a gem or a power-up.
	Item struct {
		Base        `mis:",squash"`
		Transform   `mis:",squash"`
		DataBlock   string `mis:"dataBlock"`
		Collideable bool   `mis:"collideable"`
		Static      bool   `mis:"static"`
		Rotate      bool   `mis:"rotate"`
	}

	Trigger struct {
		Base       `mis:",squash"`
		Transform  `mis:",squash"`
		DataBlock  string `mis:"dataBlock"`
		Polyhedron Vector `mis:"polyhedron"`
	}

	TSStatic struct {
		Base      `mis:",squash"`
		Transform `mis:",squash"`
		ShapeName string `mis:"shapeName"`
	}

	// PathedInterior is a moving platform following a Path.
	PathedInterior struct {
		Base                  `mis:",squash"`
		Transform             `mis:",squash"`
		DataBlock             string  `mis:"dataBlock"`
		InteriorResource      string  `mis:"interiorResource"`
		InteriorIndex         int     `mis:"interiorIndex"`
		BasePosition          Vector  `mis:"basePosition"`
		BaseRotation          Vector  `mis:"baseRotation"`
		BaseScale             Vector  `mis:"baseScale"`
		InitialTargetPosition float64 `mis:"initialTargetPosition"`
	}

	Path struct {
		Base      `mis:",squash"`
		IsLooping bool `mis:"isLooping"`
	}

	// Marker is a Path node.
	Marker struct {
		Base          `mis:",squash"`
		Transform     `mis:",squash"`
		SeqNum        int     `mis:"seqNum"`
		MSToNext      float64 `mis:"msToNext"`
		SmoothingType string  `mis:"smoothingType"`
	}

	AudioProfile struct {
		Base        `mis:",squash"`
		FileName    string `mis:"fileName"`
		Description string `mis:"description"`
		Preload     bool   `mis:"preload"`
	}

	ParticleEmitterNode struct {
		Base      `mis:",squash"`
		Transform `mis:",squash"`
		DataBlock string  `mis:"dataBlock"`
		Emitter   string  `mis:"emitter"`
		Velocity  float64 `mis:"velocity"`
	}

	SpawnSphere struct {
		Base      `mis:",squash"`
		Transform `mis:",squash"`
		DataBlock string  `mis:"dataBlock"`
		Radius    float64 `mis:"radius"`
	}

	// Unrecognized keeps an element of an unknown class as is.
	Unrecognized struct {
		Base   `mis:",squash"`
		Fields types.FieldMap `mis:"-"`
	}
)

// Element classes.
const (
	ClassUnrecognized        Class = ""
	ClassSimGroup            Class = "SimGroup"
	ClassScriptObject        Class = "ScriptObject"
	ClassMissionArea         Class = "MissionArea"
	ClassSky                 Class = "Sky"
	ClassSun                 Class = "Sun"
	ClassInteriorInstance    Class = "InteriorInstance"
	ClassStaticShape         Class = "StaticShape"
	ClassItem                Class = "Item"
	ClassTrigger             Class = "Trigger"
	ClassTSStatic            Class = "TSStatic"
	ClassPathedInterior      Class = "PathedInterior"
	ClassPath                Class = "Path"
	ClassMarker              Class = "Marker"
	ClassAudioProfile        Class = "AudioProfile"
	ClassParticleEmitterNode Class = "ParticleEmitterNode"
	ClassSpawnSphere         Class = "SpawnSphere"
)

const (
	decodeTagName = "mis"
)

var constructors = map[Class]func() Object{
	ClassSimGroup:            func() Object { return &SimGroup{} },
	ClassScriptObject:        func() Object { return &ScriptObject{} },
	ClassMissionArea:         func() Object { return &MissionArea{} },
	ClassSky:                 func() Object { return &Sky{} },
	ClassSun:                 func() Object { return &Sun{} },
	ClassInteriorInstance:    func() Object { return &InteriorInstance{} },
	ClassStaticShape:         func() Object { return &StaticShape{} },
	ClassItem:                func() Object { return &Item{} },
	ClassTrigger:             func() Object { return &Trigger{} },
	ClassTSStatic:            func() Object { return &TSStatic{} },
	ClassPathedInterior:      func() Object { return &PathedInterior{} },
	ClassPath:                func() Object { return &Path{} },
	ClassMarker:              func() Object { return &Marker{} },
	ClassAudioProfile:        func() Object { return &AudioProfile{} },
	ClassParticleEmitterNode: func() Object { return &ParticleEmitterNode{} },
	ClassSpawnSphere:         func() Object { return &SpawnSphere{} },
}

// Lowercase tag to Class, tags are case-insensitive.
var classByTag = func() map[string]Class {
	m := make(map[string]Class, len(constructors))
	for class := range constructors {
		m[strings.ToLower(string(class))] = class
	}
	return m
}()

var vectorType = reflect.TypeOf(Vector{})

// ClassOf obtains the Class of an element tag, ClassUnrecognized for unknown tags.
func ClassOf(tag string) Class { return classByTag[strings.ToLower(tag)] }

// Header retrieves the Object's header.
func (b *Base) Header() *Base { return b }

func (b *Base) sealed() {}

func (*SimGroup) Class() Class            { return ClassSimGroup }
func (*ScriptObject) Class() Class        { return ClassScriptObject }
func (*MissionArea) Class() Class         { return ClassMissionArea }
func (*Sky) Class() Class                 { return ClassSky }
func (*Sun) Class() Class                 { return ClassSun }
func (*InteriorInstance) Class() Class    { return ClassInteriorInstance }
func (*StaticShape) Class() Class         { return ClassStaticShape }
func (*Item) Class() Class                { return ClassItem }
func (*Trigger) Class() Class             { return ClassTrigger }
func (*TSStatic) Class() Class            { return ClassTSStatic }
func (*PathedInterior) Class() Class      { return ClassPathedInterior }
func (*Path) Class() Class                { return ClassPath }
func (*Marker) Class() Class              { return ClassMarker }
func (*AudioProfile) Class() Class        { return ClassAudioProfile }
func (*ParticleEmitterNode) Class() Class { return ClassParticleEmitterNode }
func (*SpawnSphere) Class() Class         { return ClassSpawnSphere }
func (*Unrecognized) Class() Class        { return ClassUnrecognized }

// Object decodes the [Element] into the typed variant of its class.
func (e *Element) Object() (obj Object, err error) {
	newObject, ok := constructors[ClassOf(e.tag)]
	if !ok {
		newObject = func() Object { return &Unrecognized{} }
	}
	obj = newObject()

	if err = Decode(e, obj); err != nil {
		return nil, err
	}

	header := obj.Header()
	header.Tag, header.Name, header.Inherits, header.Element = e.tag, e.name, e.inherits, e

	switch o := obj.(type) {
	case *ScriptObject:
		o.Fields = e.fields.Clone()
	case *Unrecognized:
		o.Fields = e.fields.Clone()
	}

	return
}

// Decode the fields of an [Element] into target, a pointer to a struct or map.
//
// Struct fields are matched through their "mis" tag, case-insensitively. Text is weakly coerced:
// numbers from numeric text, bools as [types.Value.Bool] does & [Vector]s from space separated
// numbers.
func Decode(e *Element, target any) (err error) {
	if target == nil {
		return ErrTargetNil
	}

	value := goreflect.ValueNoEscapeOf(target)
	if value.Kind() != goreflect.Ptr {
		return ErrNonPointer
	}
	if value.IsNil() {
		return ErrTargetNil
	}
	if e == nil {
		return fmt.Errorf("%w: nil element", ErrDecode)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(decodeVector, decodeBool),
		TagName:          decodeTagName,
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return
	}

	if err = dec.Decode(e.fields.Interface()); err != nil {
		err = fmt.Errorf("%w (%s): %w", ErrDecode, e.tag, err)
	}

	return
}

// decodeVector converts space separated numbers to a Vector.
func decodeVector(from, to reflect.Type, data any) (any, error) {
	if to != vectorType || from.Kind() != reflect.String {
		return data, nil
	}

	text := data.(string)
	if strings.TrimSpace(text) == "" {
		return Vector(nil), nil
	}

	vector, err := types.ParseVector(text)
	return Vector(vector), err
}

// decodeBool applies the mission bool coercion rules.
func decodeBool(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Bool || from.Kind() != reflect.String {
		return data, nil
	}

	return types.NewString(data.(string)).Bool()
}
