package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"waste_negotiation/internal/domain/entities"
	"waste_negotiation/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultContractsTableName = "contract_negotiations"
	defaultStepsTableName     = "negotiation_steps"
)

// ErrContractExists is returned by CreateContract when the id is taken.
var ErrContractExists = errors.New("contract already exists")

type contractItem struct {
	ID          string `dynamodbav:"id"`
	BusinessID  string `dynamodbav:"business_id"`
	AgencyID    string `dynamodbav:"agency_id"`
	Title       string `dynamodbav:"title"`
	Description string `dynamodbav:"description"`
	Status      string `dynamodbav:"status"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// stepItem keeps details as the exact JSON text so a payload reads back
// byte-for-byte as it was written.
type stepItem struct {
	ContractID    string `dynamodbav:"contract_id"`
	StepNumber    int    `dynamodbav:"step_number"`
	ID            string `dynamodbav:"id"`
	StepType      string `dynamodbav:"step_type"`
	Status        string `dynamodbav:"status"`
	ResponderRole string `dynamodbav:"responder_role"`
	Round         int    `dynamodbav:"round,omitempty"`
	ResponseType  string `dynamodbav:"response_type,omitempty"`
	Details       string `dynamodbav:"details"`
	CreatedAt     string `dynamodbav:"created_at"`
	CompletedAt   string `dynamodbav:"completed_at,omitempty"`
}

// NegotiationDynamoRepository persists negotiations in two DynamoDB tables.
//
// Table requirements:
//   - contracts: PK id (string)
//   - steps: PK contract_id (string), SK step_number (number)
//
// Every multi-row write goes through TransactWriteItems so a completion, its
// successor and the contract status land together or not at all.
type NegotiationDynamoRepository struct {
	ddb            *dynamodb.Client
	contractsTable string
	stepsTable     string
}

var _ interfaces.IStepRepository = (*NegotiationDynamoRepository)(nil)

func NewNegotiationDynamoRepository(ddb *dynamodb.Client) *NegotiationDynamoRepository {
	return &NegotiationDynamoRepository{
		ddb:            ddb,
		contractsTable: getenvDefault("CONTRACTS_TABLE", defaultContractsTableName),
		stepsTable:     getenvDefault("STEPS_TABLE", defaultStepsTableName),
	}
}

func (r *NegotiationDynamoRepository) LoadContract(ctx context.Context, contractID string) (entities.ContractNegotiation, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.contractsTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: contractID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ContractNegotiation{}, err
	}
	if len(out.Item) == 0 {
		return entities.ContractNegotiation{}, nil
	}

	var it contractItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ContractNegotiation{}, err
	}
	return fromContractItem(it), nil
}

func (r *NegotiationDynamoRepository) LoadSteps(ctx context.Context, contractID string) ([]entities.NegotiationStep, error) {
	paginator := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.stepsTable),
		KeyConditionExpression: aws.String("#cid = :cid"),
		ExpressionAttributeNames: map[string]string{
			"#cid": "contract_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: contractID},
		},
		ConsistentRead:   aws.Bool(true),
		ScanIndexForward: aws.Bool(true),
	})

	steps := make([]entities.NegotiationStep, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it stepItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			steps = append(steps, fromStepItem(it))
		}
	}
	return steps, nil
}

func (r *NegotiationDynamoRepository) CreateContract(ctx context.Context, contract entities.ContractNegotiation, initialStep, firstPendingStep entities.NegotiationStep) (entities.ContractNegotiation, error) {
	contractAV, err := attributevalue.MarshalMap(toContractItem(contract))
	if err != nil {
		return entities.ContractNegotiation{}, err
	}

	items := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName:           aws.String(r.contractsTable),
			Item:                contractAV,
			ConditionExpression: aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{
				"#id": "id",
			},
		},
	}}
	for _, s := range []entities.NegotiationStep{initialStep, firstPendingStep} {
		put, err := r.putStep(s)
		if err != nil {
			return entities.ContractNegotiation{}, err
		}
		items = append(items, put)
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if isConditionalCancel(err) {
			return entities.ContractNegotiation{}, fmt.Errorf("%w: %s", ErrContractExists, contract.ID)
		}
		return entities.ContractNegotiation{}, err
	}
	return contract, nil
}

func (r *NegotiationDynamoRepository) AtomicAdvance(ctx context.Context, contractID string, completed entities.NegotiationStep, next *entities.NegotiationStep, newStatus *entities.ContractStatus) error {
	completedAt := ""
	if completed.CompletedAt != nil {
		completedAt = formatTime(*completed.CompletedAt)
	}

	items := []types.TransactWriteItem{{
		Update: &types.Update{
			TableName: aws.String(r.stepsTable),
			Key:       stepKey(contractID, completed.StepNumber),
			UpdateExpression: aws.String(
				"SET #status = :completed, #response_type = :response_type, #details = :details, #completed_at = :completed_at",
			),
			ConditionExpression: aws.String("#id = :step_id AND #status = :pending"),
			ExpressionAttributeNames: map[string]string{
				"#id":            "id",
				"#status":        "status",
				"#response_type": "response_type",
				"#details":       "details",
				"#completed_at":  "completed_at",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":completed":     &types.AttributeValueMemberS{Value: string(entities.StepStatusCompleted)},
				":pending":       &types.AttributeValueMemberS{Value: string(entities.StepStatusPending)},
				":step_id":       &types.AttributeValueMemberS{Value: completed.ID},
				":response_type": &types.AttributeValueMemberS{Value: string(completed.ResponseType)},
				":details":       &types.AttributeValueMemberS{Value: detailsString(completed.Details)},
				":completed_at":  &types.AttributeValueMemberS{Value: completedAt},
			},
		},
	}}

	if next != nil {
		put, err := r.putStep(*next)
		if err != nil {
			return err
		}
		items = append(items, put)
	}

	contractKey := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: contractID},
	}
	negotiating := &types.AttributeValueMemberS{Value: string(entities.ContractStatusNegotiating)}
	if newStatus != nil {
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName:           aws.String(r.contractsTable),
				Key:                 contractKey,
				UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
				ConditionExpression: aws.String("#status = :negotiating"),
				ExpressionAttributeNames: map[string]string{
					"#status":     "status",
					"#updated_at": "updated_at",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":status":      &types.AttributeValueMemberS{Value: string(*newStatus)},
					":updated_at":  &types.AttributeValueMemberS{Value: completedAt},
					":negotiating": negotiating,
				},
			},
		})
	} else {
		items = append(items, types.TransactWriteItem{
			ConditionCheck: &types.ConditionCheck{
				TableName:           aws.String(r.contractsTable),
				Key:                 contractKey,
				ConditionExpression: aws.String("#status = :negotiating"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":negotiating": negotiating,
				},
			},
		})
	}

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if isConditionalCancel(err) {
			return fmt.Errorf("%w: step %s", interfaces.ErrStepNotPending, completed.ID)
		}
		return err
	}
	return nil
}

func (r *NegotiationDynamoRepository) putStep(s entities.NegotiationStep) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(toStepItem(s))
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(r.stepsTable),
			Item:                av,
			ConditionExpression: aws.String("attribute_not_exists(#cid)"),
			ExpressionAttributeNames: map[string]string{
				"#cid": "contract_id",
			},
		},
	}, nil
}

// isConditionalCancel reports whether a transaction lost against another
// writer: one of its conditions failed, or DynamoDB cancelled it because a
// concurrent transaction held the same item. Throttling and validation
// failures are returned unchanged.
func isConditionalCancel(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		var cfe *types.ConditionalCheckFailedException
		return errors.As(err, &cfe)
	}
	for _, reason := range tce.CancellationReasons {
		switch aws.ToString(reason.Code) {
		case "ConditionalCheckFailed", "TransactionConflict":
			return true
		}
	}
	return false
}

func stepKey(contractID string, stepNumber int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"contract_id": &types.AttributeValueMemberS{Value: contractID},
		"step_number": &types.AttributeValueMemberN{Value: strconv.Itoa(stepNumber)},
	}
}

func toContractItem(c entities.ContractNegotiation) contractItem {
	return contractItem{
		ID:          c.ID,
		BusinessID:  c.BusinessID,
		AgencyID:    c.AgencyID,
		Title:       c.Title,
		Description: c.Description,
		Status:      string(c.Status),
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
}

func fromContractItem(it contractItem) entities.ContractNegotiation {
	return entities.ContractNegotiation{
		ID:          it.ID,
		BusinessID:  it.BusinessID,
		AgencyID:    it.AgencyID,
		Title:       it.Title,
		Description: it.Description,
		Status:      entities.ContractStatus(it.Status),
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
}

func toStepItem(s entities.NegotiationStep) stepItem {
	it := stepItem{
		ContractID:    s.ContractID,
		StepNumber:    s.StepNumber,
		ID:            s.ID,
		StepType:      string(s.StepType),
		Status:        string(s.Status),
		ResponderRole: string(s.ResponderRole),
		Round:         s.Round,
		ResponseType:  string(s.ResponseType),
		Details:       detailsString(s.Details),
		CreatedAt:     formatTime(s.CreatedAt),
	}
	if s.CompletedAt != nil {
		it.CompletedAt = formatTime(*s.CompletedAt)
	}
	return it
}

func fromStepItem(it stepItem) entities.NegotiationStep {
	s := entities.NegotiationStep{
		ID:            it.ID,
		ContractID:    it.ContractID,
		StepNumber:    it.StepNumber,
		StepType:      entities.StepType(it.StepType),
		Status:        entities.StepStatus(it.Status),
		ResponderRole: entities.PartyRole(it.ResponderRole),
		Round:         it.Round,
		ResponseType:  entities.ResponseType(it.ResponseType),
		Details:       json.RawMessage(it.Details),
		CreatedAt:     parseTime(it.CreatedAt),
	}
	if it.CompletedAt != "" {
		completedAt := parseTime(it.CompletedAt)
		s.CompletedAt = &completedAt
	}
	return s
}
