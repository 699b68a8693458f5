package rpc

import "context"

// Directory service method names.
const (
	methodCreateUser        = "/pijin.Directory/CreateUser"
	methodGetUserByID       = "/pijin.Directory/GetUserByID"
	methodGetUserByUsername = "/pijin.Directory/GetUserByUsername"
	methodUpdateUser        = "/pijin.Directory/UpdateUser"
	methodCreateEntry       = "/pijin.Directory/CreateEntry"
	methodGetEntryByID      = "/pijin.Directory/GetEntryByID"
	methodGetAllEntries     = "/pijin.Directory/GetAllEntries"
	methodUpdateEntry       = "/pijin.Directory/UpdateEntry"
	methodDeleteEntryByID   = "/pijin.Directory/DeleteEntryByID"
	methodCreateVote        = "/pijin.Directory/CreateVote"
	methodGetVoteByID       = "/pijin.Directory/GetVoteByID"
	methodGetAllVotes       = "/pijin.Directory/GetAllVotes"
	methodUpdateVote        = "/pijin.Directory/UpdateVote"
	methodDeleteVoteByID    = "/pijin.Directory/DeleteVoteByID"
)

// CreateUserRequest creates a user record. The directory service enforces
// username uniqueness and answers AlreadyExists on collision.
type CreateUserRequest struct {
	Username string `json:"username"`
}

// GetUserByIDRequest looks up a user by id. Deleted=false restricts the
// lookup to live records.
type GetUserByIDRequest struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type GetUserByUsernameRequest struct {
	Username string `json:"username"`
	Deleted  bool   `json:"deleted"`
}

type UpdateUserRequest struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
}

type CreateEntryRequest struct {
	Name    string   `json:"name"`
	Meaning string   `json:"meaning"`
	Example string   `json:"example,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Image   string   `json:"image,omitempty"`
	Author  string   `json:"author"`
}

type GetEntryByIDRequest struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type ListEntriesRequest struct {
	Author  string `json:"author"`
	Deleted bool   `json:"deleted"`
}

type UpdateEntryRequest struct {
	ID      string   `json:"id"`
	Name    string   `json:"name,omitempty"`
	Meaning string   `json:"meaning,omitempty"`
	Example string   `json:"example,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Image   string   `json:"image,omitempty"`
}

type DeleteEntryRequest struct {
	ID string `json:"id"`
}

type CreateVoteRequest struct {
	Entry string `json:"entry"`
	Type  string `json:"type"`
	Voter string `json:"voter"`
}

type GetVoteByIDRequest struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type ListVotesRequest struct {
	Voter   string `json:"voter"`
	Entry   string `json:"entry,omitempty"`
	Type    string `json:"type,omitempty"`
	Deleted bool   `json:"deleted"`
}

type UpdateVoteRequest struct {
	ID    string `json:"id"`
	Entry string `json:"entry,omitempty"`
	Type  string `json:"type,omitempty"`
}

type DeleteVoteRequest struct {
	ID string `json:"id"`
}

// Directory is the typed operation set of the directory service.
type Directory struct {
	c *Client
}

// NewDirectory wraps a dialed client.
func NewDirectory(c *Client) *Directory {
	return &Directory{c: c}
}

func (d *Directory) CreateUser(ctx context.Context, req CreateUserRequest) (*Envelope, error) {
	return d.c.invoke(ctx, methodCreateUser, &req)
}

func (d *Directory) GetUserByID(ctx context.Context, req GetUserByIDRequest) (*Envelope, error) {
	return d.c.invoke(ctx, methodGetUserByID, &req)
}

func (d *Directory) GetUserByUsername(ctx context.Context, req GetUserByUsernameRequest) (*Envelope, error) {
	return d.c.invoke(ctx, methodGetUserByUsername, &req)
}

func (d *Directory) UpdateUser(ctx context.Context, req UpdateUserRequest) (*Envelope, error) {
	return d.c.invoke(ctx, methodUpdateUser, &req)
}

func (d *Directory) CreateEntry(ctx context.Context, req CreateEntryRequest) (*Envelope, error) {
	return d.c.invoke(ctx, methodCreateEntry, &req)
}

func (d *Directory) GetEntryByID(ctx context.Context, req GetEntryByIDRequest) (*Envelope, error) {
	return d.c.invoke(ctx, methodGetEntryByID, &req)
}

func (d *Directory) GetAllEntries(ctx context.Context, req ListEntriesRequest) (*Envelope, error) {
	return d.c.invoke(ctx, methodGetAllEntries, &req)
}

func (d *Directory) UpdateEntry(ctx context.Context, req UpdateEntryRequest) (*Envelope, error) {
	return d.c.invoke(ctx, methodUpdateEntry, &req)
}

func (d *Directory) DeleteEntryByID(ctx context.Context, req DeleteEntryRequest) (*Envelope, error) {
	return d.c.invoke(ctx, methodDeleteEntryByID, &req)
}

func (d *Directory) CreateVote(ctx context.Context, req CreateVoteRequest) (*Envelope, error) {
	return d.c.invoke(ctx, methodCreateVote, &req)
}

func (d *Directory) GetVoteByID(ctx context.Context, req GetVoteByIDRequest) (*Envelope, error) {
	return d.c.invoke(ctx, methodGetVoteByID, &req)
}

func (d *Directory) GetAllVotes(ctx context.Context, req ListVotesRequest) (*Envelope, error) {
	return d.c.invoke(ctx, methodGetAllVotes, &req)
}

func (d *Directory) UpdateVote(ctx context.Context, req UpdateVoteRequest) (*Envelope, error) {
	return d.c.invoke(ctx, methodUpdateVote, &req)
}

func (d *Directory) DeleteVoteByID(ctx context.Context, req DeleteVoteRequest) (*Envelope, error) {
	return d.c.invoke(ctx, methodDeleteVoteByID, &req)
}
