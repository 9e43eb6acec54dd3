package order

import (
	"freight/internal/core/domain/model/kernel"
)

// stageTemplate describes one step of a service type's workflow.
type stageTemplate struct {
	name                 string
	requiresConfirmation bool
	advancesTo           Status
}

// stageTemplates maps every service type to its ordered workflow. Each
// workflow opens with a client-confirmed booking stage gating
// pending -> confirmed, marks the departure stage gating
// confirmed -> in_transit, and closes with a client-confirmed delivery
// stage gating in_transit -> delivered.
func stageTemplates() map[kernel.ServiceType][]stageTemplate {
	return map[kernel.ServiceType][]stageTemplate{
		kernel.ServiceTypeFreight: {
			{name: "booking_confirmation", requiresConfirmation: true, advancesTo: StatusConfirmed},
			{name: "cargo_pickup"},
			{name: "export_customs"},
			{name: "vessel_departure", advancesTo: StatusInTransit},
			{name: "vessel_arrival"},
			{name: "import_customs"},
			{name: "final_delivery", requiresConfirmation: true, advancesTo: StatusDelivered},
		},
		kernel.ServiceTypeRailway: {
			{name: "booking_confirmation", requiresConfirmation: true, advancesTo: StatusConfirmed},
			{name: "wagon_loading"},
			{name: "rail_departure", advancesTo: StatusInTransit},
			{name: "rail_arrival"},
			{name: "final_delivery", requiresConfirmation: true, advancesTo: StatusDelivered},
		},
		kernel.ServiceTypeAuto: {
			{name: "booking_confirmation", requiresConfirmation: true, advancesTo: StatusConfirmed},
			{name: "truck_departure", advancesTo: StatusInTransit},
			{name: "final_delivery", requiresConfirmation: true, advancesTo: StatusDelivered},
		},
		kernel.ServiceTypeContainerRental: {
			{name: "rental_agreement", requiresConfirmation: true, advancesTo: StatusConfirmed},
			{name: "container_handover", advancesTo: StatusInTransit},
			{name: "container_return", requiresConfirmation: true, advancesTo: StatusDelivered},
		},
	}
}

// StagesFor builds the fresh stage sequence for a service type. Every order
// of the same service type starts from the same template; the stages then
// evolve independently with the order.
func StagesFor(serviceType kernel.ServiceType) ([]Stage, error) {
	if err := serviceType.Validate(); err != nil {
		return nil, err
	}

	templates := stageTemplates()[serviceType]
	stages := make([]Stage, 0, len(templates))
	for i, tpl := range templates {
		stages = append(stages, Stage{
			name:                 tpl.name,
			sequence:             i + 1,
			requiresConfirmation: tpl.requiresConfirmation,
			advancesTo:           tpl.advancesTo,
			status:               StagePending,
		})
	}

	return stages, nil
}
