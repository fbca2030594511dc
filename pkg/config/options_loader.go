package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/navigatorx-transit/pkg"
	"github.com/lintang-b-s/navigatorx-transit/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-transit/pkg/traverse"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
	"github.com/spf13/viper"
)

var (
	ErrInvalidSearchOptions = errors.New("invalid search options")
	ErrInvalidRoutingConfig = errors.New("invalid routing config")
)

// searchOptionsConfig. user facing search options, keys under "search.".
type searchOptionsConfig struct {
	Wheelchair      bool
	Mode            string   `validate:"required,oneof=WALK BICYCLE CAR walk bicycle car"`
	TransitModes    []string `validate:"dive,oneof=BUS TRAM SUBWAY RAIL FERRY bus tram subway rail ferry"`
	KissAndRide     bool
	ParkAndRide     bool
	ArriveBy        bool
	WalkSpeed       float64 `validate:"gt=0,lte=10"`
	BikeSpeed       float64 `validate:"gt=0,lte=30"`
	CarSpeed        float64 `validate:"gt=0,lte=70"`
	WalkReluctance  float64 `validate:"gte=1"`
	BoardCost       float64 `validate:"gte=0"`
	TransferPenalty float64 `validate:"gte=0"`
	BoardSlack      int64   `validate:"gte=0"`
	AlightSlack     int64   `validate:"gte=0"`
}

type routingConfig struct {
	Heuristic    string `validate:"required,oneof=trivial dijkstra euclidean lowerbound lower_bound landmark alt"`
	NumWorkers   int    `validate:"gte=1,lte=1024"`
	NumLandmarks int    `validate:"gte=1,lte=64"`
	LandmarkFile string
}

// RoutingConfig. engine level settings, keys under "routing.".
type RoutingConfig struct {
	Heuristic  routing.HeuristicType
	NumWorkers int
	// NumLandmarks & LandmarkFile are only used by the landmark heuristic.
	// an empty LandmarkFile means landmarks are computed at startup and never persisted.
	NumLandmarks int
	LandmarkFile string
}

func setSearchDefaults(v *viper.Viper) {
	v.SetDefault("search.wheelchair", false)
	v.SetDefault("search.mode", pkg.WALK.String())
	v.SetDefault("search.transit_modes", []string{"BUS", "TRAM", "SUBWAY", "RAIL", "FERRY"})
	v.SetDefault("search.kiss_and_ride", false)
	v.SetDefault("search.park_and_ride", false)
	v.SetDefault("search.arrive_by", false)
	v.SetDefault("search.walk_speed", pkg.DEFAULT_WALK_SPEED)
	v.SetDefault("search.bike_speed", pkg.DEFAULT_BIKE_SPEED)
	v.SetDefault("search.car_speed", pkg.DEFAULT_CAR_SPEED)
	v.SetDefault("search.walk_reluctance", pkg.DEFAULT_WALK_RELUCTANCE)
	v.SetDefault("search.board_cost", pkg.DEFAULT_BOARD_COST)
	v.SetDefault("search.transfer_penalty", pkg.DEFAULT_TRANSFER_COST)
	v.SetDefault("search.board_slack", pkg.DEFAULT_BOARD_SLACK)
	v.SetDefault("search.alight_slack", pkg.DEFAULT_ALIGHT_SLACK)

	v.SetDefault("routing.heuristic", routing.LOWER_BOUND.String())
	v.SetDefault("routing.workers", 4)
	v.SetDefault("routing.landmarks", 16)
	v.SetDefault("routing.landmark_file", "")
}

// LoadSearchOptions. builds validated SearchOptions from the "search." keys of v, missing keys get defaults.
func LoadSearchOptions(v *viper.Viper) (*traverse.SearchOptions, error) {
	setSearchDefaults(v)

	cfg := searchOptionsConfig{
		Wheelchair:      v.GetBool("search.wheelchair"),
		Mode:            v.GetString("search.mode"),
		TransitModes:    v.GetStringSlice("search.transit_modes"),
		KissAndRide:     v.GetBool("search.kiss_and_ride"),
		ParkAndRide:     v.GetBool("search.park_and_ride"),
		ArriveBy:        v.GetBool("search.arrive_by"),
		WalkSpeed:       v.GetFloat64("search.walk_speed"),
		BikeSpeed:       v.GetFloat64("search.bike_speed"),
		CarSpeed:        v.GetFloat64("search.car_speed"),
		WalkReluctance:  v.GetFloat64("search.walk_reluctance"),
		BoardCost:       v.GetFloat64("search.board_cost"),
		TransferPenalty: v.GetFloat64("search.transfer_penalty"),
		BoardSlack:      v.GetInt64("search.board_slack"),
		AlightSlack:     v.GetInt64("search.alight_slack"),
	}
	if err := validate(cfg); err != nil {
		return nil, util.WrapErrorf(ErrInvalidSearchOptions, util.ErrBadParamInput, "%v", err)
	}

	mode, _ := pkg.ParseTraverseMode(cfg.Mode)
	transitModes := pkg.NewTraverseModeSet()
	for _, m := range cfg.TransitModes {
		tm, _ := pkg.ParseTraverseMode(m)
		transitModes = transitModes.With(tm)
	}

	return &traverse.SearchOptions{
		Wheelchair:      cfg.Wheelchair,
		Mode:            mode,
		TransitModes:    transitModes,
		KissAndRide:     cfg.KissAndRide,
		ParkAndRide:     cfg.ParkAndRide,
		ArriveBy:        cfg.ArriveBy,
		WalkSpeed:       cfg.WalkSpeed,
		BikeSpeed:       cfg.BikeSpeed,
		CarSpeed:        cfg.CarSpeed,
		WalkReluctance:  cfg.WalkReluctance,
		BoardCost:       cfg.BoardCost,
		TransferPenalty: cfg.TransferPenalty,
		BoardSlack:      cfg.BoardSlack,
		AlightSlack:     cfg.AlightSlack,
	}, nil
}

// LoadRoutingConfig. reads the "routing." keys of v.
func LoadRoutingConfig(v *viper.Viper) (RoutingConfig, error) {
	setSearchDefaults(v)

	cfg := routingConfig{
		Heuristic:    v.GetString("routing.heuristic"),
		NumWorkers:   v.GetInt("routing.workers"),
		NumLandmarks: v.GetInt("routing.landmarks"),
		LandmarkFile: v.GetString("routing.landmark_file"),
	}
	if err := validate(cfg); err != nil {
		return RoutingConfig{}, util.WrapErrorf(ErrInvalidRoutingConfig, util.ErrBadParamInput, "%v", err)
	}
	heuristic, _ := routing.ParseHeuristicType(cfg.Heuristic)
	return RoutingConfig{
		Heuristic:    heuristic,
		NumWorkers:   cfg.NumWorkers,
		NumLandmarks: cfg.NumLandmarks,
		LandmarkFile: cfg.LandmarkFile,
	}, nil
}

// ReadSearchOptions. loads SearchOptions from a config file, format taken from its extension.
func ReadSearchOptions(path string) (*traverse.SearchOptions, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read search options %s: %w", path, err)
	}
	return LoadSearchOptions(v)
}

func validate(s interface{}) error {
	validate := validator.New()
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	vv := translateError(err, trans)
	vvString := make([]string, 0, len(vv))
	for _, v := range vv {
		vvString = append(vvString, v.Error())
	}
	return fmt.Errorf("validation error: %s", strings.Join(vvString, "; "))
}

func translateError(err error, trans ut.Translator) []error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []error{err}
	}
	errs := make([]error, 0, len(validationErrors))
	for _, e := range validationErrors {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}
