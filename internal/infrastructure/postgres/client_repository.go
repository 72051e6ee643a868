package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/congelados-pos/internal/domain"
	"github.com/tu-usuario/congelados-pos/internal/domain/entity"
	"github.com/tu-usuario/congelados-pos/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository sobre PostgreSQL (usable con
// pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, phone, email, address, credit_limit, current_debt, created_at, updated_at`

// Create persiste un cliente nuevo.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, phone, email, address, credit_limit, current_debt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Phone, client.Email, client.Address,
		client.CreditLimit, client.CurrentDebt, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID, o nil si no existe.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea la fila del cliente (SELECT FOR UPDATE). Solo tiene
// sentido dentro de una transacción.
func (r *ClientRepo) GetForUpdate(id string) (*entity.Client, error) {
	return r.get(id, true)
}

func (r *ClientRepo) get(id string, forUpdate bool) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address,
		&c.CreditLimit, &c.CurrentDebt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// GetByName devuelve el cliente más antiguo con ese nombre exacto, o nil.
// La unicidad de nombres no se garantiza.
func (r *ClientRepo) GetByName(name string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE name = $1 ORDER BY created_at, id LIMIT 1`
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, name).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address,
		&c.CreditLimit, &c.CurrentDebt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by name: %w", err)
	}
	return &c, nil
}

// List devuelve los clientes en orden de inserción.
func (r *ClientRepo) List() ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address,
			&c.CreditLimit, &c.CurrentDebt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente existente. La deuda no se toca por aquí.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, phone = $3, email = $4, address = $5, credit_limit = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Phone, client.Email, client.Address,
		client.CreditLimit, client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("cliente %s: %w", client.ID, domain.ErrNotFound)
	}
	return nil
}

// AdjustDebt aplica delta a la deuda actual en una sola sentencia atómica.
func (r *ClientRepo) AdjustDebt(id string, delta decimal.Decimal, now time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE clients SET current_debt = current_debt + $2, updated_at = $3 WHERE id = $1`,
		id, delta, now,
	)
	if err != nil {
		return fmt.Errorf("adjust debt: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *ClientRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
