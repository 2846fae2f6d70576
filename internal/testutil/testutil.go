package testutil

import (
	"strings"
	"testing"

	"github.com/abrezinsky/pinplanner/internal/catalog"
	"github.com/abrezinsky/pinplanner/internal/repository"
)

// NewTestRepository creates a new in-memory repository for testing.
// Each call creates a fresh database with all migrations applied.
func NewTestRepository(t *testing.T) *repository.Repository {
	t.Helper()

	repo, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}

	t.Cleanup(func() {
		repo.Close()
	})

	return repo
}

// TestCatalogYAML is a small catalog with predictable pin positions.
//
// test_board pin indexes:
//
//	0 VCC power   1 D0 gpio   2 SDA i2c   3 GND ground   4 D1 gpio
//	5 SCL i2c     6 GND ground 7 D2 gpio  8 VCC power    9 TX uart
const TestCatalogYAML = `
schema_version: "1.0.0"
boards:
  - id: test_board
    name: Test Board
    voltage: 3.3
    pins:
      - { label: VCC, type: power }
      - { label: D0, type: gpio }
      - { label: SDA, type: i2c }
      - { label: GND, type: ground }
      - { label: D1, type: gpio }
      - { label: SCL, type: i2c }
      - { label: GND, type: ground }
      - { label: D2, type: gpio }
      - { label: VCC, type: power }
      - { label: TX, type: uart }
  - id: no_power_board
    name: Board Without Power Pins
    pins:
      - { label: D0, type: gpio }
      - { label: SDA, type: i2c }
      - { label: GND, type: ground }
  - id: five_volt_board
    name: Five Volt Board
    voltage: 5
    pins:
      - { label: 5V, type: power }
      - { label: D0, type: gpio }
      - { label: GND, type: ground }
components:
  - id: led
    name: LED
    data: [gpio]
    power: 0
    ground: 1
    dependencies:
      - type: resistor
        default_required: true
  - id: sensor
    name: I2C Sensor
    data: [i2c]
    power: 1
    ground: 1
  - id: display
    name: Display
    data: [i2c, spi]
    power: 1
    ground: 1
  - id: servo
    name: Servo
    data: [gpio]
    power: 1
    ground: 1
    dependencies:
      - type: power_supply
        default_required: optional
  - id: ranger
    name: Ultrasonic Ranger
    data: [gpio]
    power: 1
    ground: 1
    dependencies:
      - type: resistor
        default_required: false
      - type: level_shifter
        default_required: false
        board_overrides:
          test_board:
            required: true
            reason: Echo is 5V and the board is 3.3V.
  - id: hungry
    name: Hungry Actuator
    data: [gpio]
    power: 3
    ground: 1
  - id: gps
    name: GPS
    data: [uart]
    power: 1
    ground: 2
  - id: plain
    name: Plain Input
    data: [gpio]
    power: 0
    ground: 0
`

// NewTestCatalog loads TestCatalogYAML.
func NewTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.Load(strings.NewReader(TestCatalogYAML), catalog.Options{})
	if err != nil {
		t.Fatalf("failed to load test catalog: %v", err)
	}
	return cat
}
