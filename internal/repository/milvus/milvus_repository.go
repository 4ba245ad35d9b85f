package milvus

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"assessMatch/domain"
)

const (
	nameField   = "name"
	vectorField = "embedding"

	maxNameLength = "512"
)

// Repository stores catalog embeddings in a Milvus collection. Selected over
// the in-memory index via VECTOR_STORE=milvus when the index should survive
// restarts or be shared between replicas.
type Repository struct {
	milvusClient client.Client
	collection   string
	dim          int
}

func NewRepository(ctx context.Context, host string, port int, collection string, dim int) (*Repository, error) {
	c, err := client.NewGrpcClient(ctx, fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, fmt.Errorf("connect to milvus: %w", err)
	}

	r := &Repository{
		milvusClient: c,
		collection:   collection,
		dim:          dim,
	}

	if err := r.ensureCollection(ctx); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Repository) ensureCollection(ctx context.Context) error {
	exists, err := r.milvusClient.HasCollection(ctx, r.collection)
	if err != nil {
		return fmt.Errorf("check collection: %w", err)
	}

	if !exists {
		schema := &entity.Schema{
			CollectionName: r.collection,
			Fields: []*entity.Field{
				{
					Name:       nameField,
					DataType:   entity.FieldTypeVarChar,
					PrimaryKey: true,
					TypeParams: map[string]string{entity.TypeParamMaxLength: maxNameLength},
				},
				{
					Name:       vectorField,
					DataType:   entity.FieldTypeFloatVector,
					TypeParams: map[string]string{entity.TypeParamDim: fmt.Sprintf("%d", r.dim)},
				},
			},
		}

		if err := r.milvusClient.CreateCollection(ctx, schema, 1); err != nil {
			return fmt.Errorf("create collection: %w", err)
		}

		idx, err := entity.NewIndexIvfFlat(entity.COSINE, 128)
		if err != nil {
			return fmt.Errorf("build index definition: %w", err)
		}
		if err := r.milvusClient.CreateIndex(ctx, r.collection, vectorField, idx, false); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	if err := r.milvusClient.LoadCollection(ctx, r.collection, false); err != nil {
		return fmt.Errorf("load collection: %w", err)
	}

	return nil
}

// Upsert writes the catalog documents into the collection.
func (r *Repository) Upsert(ctx context.Context, docs []domain.VectorDocument) error {
	if len(docs) == 0 {
		return nil
	}

	names := make([]string, 0, len(docs))
	vectors := make([][]float32, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
		vectors = append(vectors, d.Vector)
	}

	_, err := r.milvusClient.Upsert(
		ctx,
		r.collection,
		"",
		entity.NewColumnVarChar(nameField, names),
		entity.NewColumnFloatVector(vectorField, r.dim, vectors),
	)
	if err != nil {
		return fmt.Errorf("upsert into milvus: %w", err)
	}

	if err := r.milvusClient.Flush(ctx, r.collection, false); err != nil {
		return fmt.Errorf("flush milvus: %w", err)
	}

	return nil
}

// Search runs a cosine similarity search and returns the top-k names with
// their scores.
func (r *Repository) Search(ctx context.Context, vector []float32, k int) ([]domain.VectorHit, error) {
	sp, err := entity.NewIndexIvfFlatSearchParam(10)
	if err != nil {
		return nil, fmt.Errorf("create search params: %w", err)
	}

	results, err := r.milvusClient.Search(
		ctx,
		r.collection,
		[]string{},
		"",
		[]string{nameField},
		[]entity.Vector{entity.FloatVector(vector)},
		vectorField,
		entity.COSINE,
		k,
		sp,
	)
	if err != nil {
		return nil, fmt.Errorf("search milvus: %w", err)
	}

	hits := make([]domain.VectorHit, 0, k)
	for _, result := range results {
		names, ok := result.IDs.(*entity.ColumnVarChar)
		if !ok {
			continue
		}
		for i := 0; i < names.Len(); i++ {
			hits = append(hits, domain.VectorHit{
				Name:  names.Data()[i],
				Score: float64(result.Scores[i]),
			})
		}
	}

	return hits, nil
}

// Close releases the Milvus connection.
func (r *Repository) Close() error {
	return r.milvusClient.Close()
}
