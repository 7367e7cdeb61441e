// Package roster implements the backend for a public team roster site:
// teams, members, publications and social links exposed over a JSON API,
// with email-whitelisted self registration, JWT access/refresh
// credentials, and role/ownership based authorization.
package roster
