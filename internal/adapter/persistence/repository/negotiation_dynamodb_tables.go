package repository

import (
	"context"
	"errors"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// EnsureTables creates the contracts and steps tables when they are missing.
// Meant for local DynamoDB; production tables are provisioned outside the app.
func (r *NegotiationDynamoRepository) EnsureTables(ctx context.Context) error {
	tables := []*dynamodb.CreateTableInput{
		{
			TableName: aws.String(r.contractsTable),
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
			},
			BillingMode: types.BillingModePayPerRequest,
		},
		{
			TableName: aws.String(r.stepsTable),
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("contract_id"), AttributeType: types.ScalarAttributeTypeS},
				{AttributeName: aws.String("step_number"), AttributeType: types.ScalarAttributeTypeN},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("contract_id"), KeyType: types.KeyTypeHash},
				{AttributeName: aws.String("step_number"), KeyType: types.KeyTypeRange},
			},
			BillingMode: types.BillingModePayPerRequest,
		},
	}

	for _, in := range tables {
		_, err := r.ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: in.TableName})
		if err == nil {
			continue
		}
		var notFound *types.ResourceNotFoundException
		if !errors.As(err, &notFound) {
			log.Printf("[negotiation][repository] describe table failed table=%s err=%v", *in.TableName, err)
			return err
		}

		if _, err := r.ddb.CreateTable(ctx, in); err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				continue
			}
			log.Printf("[negotiation][repository] create table failed table=%s err=%v", *in.TableName, err)
			return err
		}
		log.Printf("[negotiation][repository] created table=%s", *in.TableName)
	}
	return nil
}
