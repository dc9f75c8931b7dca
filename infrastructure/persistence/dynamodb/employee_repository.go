package dynamodb

import (
	"context"
	"fmt"
	"time"

	"orgchart-backend/application/ports"
	"orgchart-backend/domain/core/entities"
	"orgchart-backend/domain/core/valueobjects"
	pkgerrors "orgchart-backend/pkg/errors"
	"orgchart-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// EmployeeRepository implements ports.EmployeeRepository on DynamoDB.
// Single-table layout: PK "ORG#<org>", SK "EMP#<employee>".
type EmployeeRepository struct {
	client    *dynamodb.Client
	tableName string
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(client *dynamodb.Client, tableName string, tracer *observability.Tracer, logger *zap.Logger) ports.EmployeeRepository {
	return &EmployeeRepository{
		client:    client,
		tableName: tableName,
		tracer:    tracer,
		logger:    logger,
	}
}

// employeeItem represents the DynamoDB item structure for an employee
type employeeItem struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	EntityType  string `dynamodbav:"EntityType"`
	EmployeeID  string `dynamodbav:"EmployeeID"`
	Name        string `dynamodbav:"Name"`
	Designation string `dynamodbav:"Designation"`
	Team        string `dynamodbav:"Team,omitempty"`
	ManagerID   string `dynamodbav:"ManagerID,omitempty"`
	CreatedAt   string `dynamodbav:"CreatedAt"`
	UpdatedAt   string `dynamodbav:"UpdatedAt"`
	Version     int    `dynamodbav:"Version"`
}

func organizationKey(organizationID string) string {
	return fmt.Sprintf("ORG#%s", organizationID)
}

func employeeKey(employeeID string) string {
	return fmt.Sprintf("EMP#%s", employeeID)
}

// List retrieves every employee of an organization
func (r *EmployeeRepository) List(ctx context.Context, organizationID string) ([]*entities.Employee, error) {
	var employees []*entities.Employee

	err := r.tracer.Trace(ctx, "ListEmployees", func(ctx context.Context) error {
		keyCond := expression.Key("PK").Equal(expression.Value(organizationKey(organizationID))).
			And(expression.Key("SK").BeginsWith("EMP#"))

		expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
		if err != nil {
			return fmt.Errorf("failed to build query expression: %w", err)
		}

		input := &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		}

		for {
			out, err := r.client.Query(ctx, input)
			if err != nil {
				return err
			}

			for _, raw := range out.Items {
				var item employeeItem
				if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
					r.logger.Warn("Skipping unreadable employee item", zap.Error(err))
					continue
				}
				employee, err := item.toEntity()
				if err != nil {
					r.logger.Warn("Skipping invalid employee item",
						zap.String("employeeID", item.EmployeeID),
						zap.Error(err),
					)
					continue
				}
				employees = append(employees, employee)
			}

			if out.LastEvaluatedKey == nil {
				return nil
			}
			input.ExclusiveStartKey = out.LastEvaluatedKey
		}
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list employees", err)
	}

	r.logger.Debug("Listed employees",
		zap.String("organizationID", organizationID),
		zap.Int("count", len(employees)),
	)
	return employees, nil
}

// Save persists a full employee record
func (r *EmployeeRepository) Save(ctx context.Context, organizationID string, employee *entities.Employee) error {
	item := toItem(organizationID, employee)

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal employee: %w", err)
	}

	err = r.tracer.Trace(ctx, "SaveEmployee", func(ctx context.Context) error {
		_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(r.tableName),
			Item:      av,
		})
		return err
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("save employee", err)
	}
	return nil
}

// UpdateManager writes the employee's current manager reference and
// attributes, returning the stored record. The write is conditioned on
// the record existing so a deleted employee is not resurrected.
func (r *EmployeeRepository) UpdateManager(ctx context.Context, organizationID string, employee *entities.Employee) (*entities.Employee, error) {
	update := expression.
		Set(expression.Name("ManagerID"), expression.Value(employee.ManagerID().String())).
		Set(expression.Name("Name"), expression.Value(employee.Name())).
		Set(expression.Name("Designation"), expression.Value(employee.Designation())).
		Set(expression.Name("Team"), expression.Value(employee.Team())).
		Set(expression.Name("UpdatedAt"), expression.Value(employee.UpdatedAt().Format(time.RFC3339))).
		Set(expression.Name("Version"), expression.Value(employee.Version()))

	cond := expression.AttributeExists(expression.Name("PK"))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build update expression: %w", err)
	}

	var updated *entities.Employee
	err = r.tracer.Trace(ctx, "UpdateEmployeeManager", func(ctx context.Context) error {
		out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: organizationKey(organizationID)},
				"SK": &types.AttributeValueMemberS{Value: employeeKey(employee.ID().String())},
			},
			UpdateExpression:          expr.Update(),
			ConditionExpression:       expr.Condition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ReturnValues:              types.ReturnValueAllNew,
		})
		if err != nil {
			return err
		}

		var item employeeItem
		if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
			return fmt.Errorf("failed to unmarshal updated employee: %w", err)
		}
		updated, err = item.toEntity()
		return err
	})
	if err != nil {
		r.logger.Error("Failed to persist manager change",
			zap.String("employeeID", employee.ID().String()),
			zap.Error(err),
		)
		return nil, pkgerrors.NewDatabaseError("update employee manager", err)
	}

	return updated, nil
}

func toItem(organizationID string, e *entities.Employee) employeeItem {
	return employeeItem{
		PK:          organizationKey(organizationID),
		SK:          employeeKey(e.ID().String()),
		EntityType:  "EMPLOYEE",
		EmployeeID:  e.ID().String(),
		Name:        e.Name(),
		Designation: e.Designation(),
		Team:        e.Team(),
		ManagerID:   e.ManagerID().String(),
		CreatedAt:   e.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt().Format(time.RFC3339),
		Version:     e.Version(),
	}
}

func (item employeeItem) toEntity() (*entities.Employee, error) {
	id, err := valueobjects.NewEmployeeID(item.EmployeeID)
	if err != nil {
		return nil, err
	}

	var managerID valueobjects.EmployeeID
	if item.ManagerID != "" {
		managerID, err = valueobjects.NewEmployeeID(item.ManagerID)
		if err != nil {
			return nil, err
		}
	}

	createdAt, _ := time.Parse(time.RFC3339, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, item.UpdatedAt)

	return entities.ReconstructEmployee(
		id,
		item.Name,
		item.Designation,
		item.Team,
		managerID,
		createdAt,
		updatedAt,
		item.Version,
	)
}
