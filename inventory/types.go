package inventory

import (
	"time"
)

type WorkOrderStatus string

const (
	WorkOrderStatusPlanned WorkOrderStatus = "PLANNED"
	WorkOrderStatusPending WorkOrderStatus = "PENDING"
	WorkOrderStatusDone    WorkOrderStatus = "DONE"
)

type WorkOrderPriority string

const (
	WorkOrderPriorityUrgent WorkOrderPriority = "URGENT"
	WorkOrderPriorityHigh   WorkOrderPriority = "HIGH"
	WorkOrderPriorityMedium WorkOrderPriority = "MEDIUM"
	WorkOrderPriorityLow    WorkOrderPriority = "LOW"
	WorkOrderPriorityNone   WorkOrderPriority = "NONE"
)

type ServiceStatus string

const (
	ServiceStatusPending      ServiceStatus = "PENDING"
	ServiceStatusInService    ServiceStatus = "IN_SERVICE"
	ServiceStatusMaintenance  ServiceStatus = "MAINTENANCE"
	ServiceStatusDisconnected ServiceStatus = "DISCONNECTED"
)

type AddProjectInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type"`
	Location    string  `json:"location,omitempty"`
}

type EditProjectInput struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type"`
	Location    string  `json:"location,omitempty"`
}

type AddProjectTypeInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type AddWorkOrderInput struct {
	Name            string             `json:"name"`
	Description     *string            `json:"description,omitempty"`
	WorkOrderTypeID string             `json:"workOrderTypeId"`
	LocationID      string             `json:"locationId,omitempty"`
	ProjectID       string             `json:"projectId,omitempty"`
	AssigneeID      string             `json:"assigneeId,omitempty"`
	Status          *WorkOrderStatus   `json:"status,omitempty"`
	Priority        *WorkOrderPriority `json:"priority,omitempty"`
}

type EditWorkOrderInput struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	AssigneeID  string            `json:"assigneeId,omitempty"`
	InstallDate *time.Time        `json:"installDate,omitempty"`
	Status      WorkOrderStatus   `json:"status"`
	Priority    WorkOrderPriority `json:"priority"`
	ProjectID   string            `json:"projectId,omitempty"`
	LocationID  string            `json:"locationId,omitempty"`
}

type AddLocationInput struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Parent     string   `json:"parent,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	ExternalID *string  `json:"externalId,omitempty"`
}

type EditLocationInput struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	ExternalID *string `json:"externalId,omitempty"`
}

type AddEquipmentInput struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Location   string  `json:"location,omitempty"`
	WorkOrder  string  `json:"workOrder,omitempty"`
	ExternalID *string `json:"externalId,omitempty"`
}

type ServiceCreateData struct {
	Name          string         `json:"name"`
	ExternalID    *string        `json:"externalId,omitempty"`
	ServiceTypeID string         `json:"serviceTypeId"`
	Status        *ServiceStatus `json:"status,omitempty"`
	CustomerID    string         `json:"customerId,omitempty"`
}

// NamedNode is the id and display name of a referenced entity.
type NamedNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Project struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Description        *string    `json:"description,omitempty"`
	Type               NamedNode  `json:"type"`
	Location           *NamedNode `json:"location,omitempty"`
	NumberOfWorkOrders int32      `json:"numberOfWorkOrders"`
}

type ProjectType struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	NumberOfProjects int32   `json:"numberOfProjects"`
}

type WorkOrder struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   *string           `json:"description,omitempty"`
	WorkOrderType NamedNode         `json:"workOrderType"`
	Status        WorkOrderStatus   `json:"status"`
	Priority      WorkOrderPriority `json:"priority"`
	InstallDate   *time.Time        `json:"installDate,omitempty"`
	Location      *NamedNode        `json:"location,omitempty"`
	Project       *NamedNode        `json:"project,omitempty"`
}

type Location struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	ExternalID     *string    `json:"externalId,omitempty"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	LocationType   NamedNode  `json:"locationType"`
	ParentLocation *NamedNode `json:"parentLocation,omitempty"`
}

type Equipment struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	ExternalID     *string    `json:"externalId,omitempty"`
	EquipmentType  NamedNode  `json:"equipmentType"`
	ParentLocation *NamedNode `json:"parentLocation,omitempty"`
}

type Service struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	ExternalID  *string       `json:"externalId,omitempty"`
	Status      ServiceStatus `json:"status"`
	ServiceType NamedNode     `json:"serviceType"`
}

type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor,omitempty"`
}
