package todo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// TasksKey is the durable key holding the serialized list.
const TasksKey = "todos"

const taskListSchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "text", "completed", "createdAt"],
		"properties": {
			"id": {"type": "integer"},
			"text": {"type": "string", "minLength": 1},
			"completed": {"type": "boolean"},
			"createdAt": {"type": "string"},
			"reminder": {"type": ["string", "null"]}
		}
	}
}`

var taskListSchema = jsonschema.MustCompileString("tasks.schema.json", taskListSchemaJSON)

// KV is the durable key/value surface the list is written to.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// BlobPersister writes the whole list as one JSON array under TasksKey.
type BlobPersister struct {
	kv      KV
	key     string
	timeout time.Duration
}

func NewBlobPersister(kv KV) *BlobPersister {
	return &BlobPersister{kv: kv, key: TasksKey, timeout: 5 * time.Second}
}

func (p *BlobPersister) Load() ([]Task, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	data, ok, err := p.kv.Get(ctx, p.key)
	if err != nil {
		return nil, err
	}
	if !ok || len(bytes.TrimSpace(data)) == 0 {
		return []Task{}, nil
	}
	if err := validateTaskList(data); err != nil {
		return nil, err
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.key, err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

func (p *BlobPersister) Save(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	return p.kv.Put(ctx, p.key, data)
}

func validateTaskList(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode task list: %w", err)
	}
	if err := taskListSchema.Validate(doc); err != nil {
		return fmt.Errorf("invalid task list: %w", err)
	}
	return nil
}
