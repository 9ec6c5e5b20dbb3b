// Package binance is a REST client for the Binance spot API.
//
// Every call runs the same pipeline: check that the credentials satisfy the
// endpoint's security level, wait for client-side rate limit capacity, sign
// the canonical query when required, dispatch exactly one HTTP request and
// decode the answer into a record or a typed error from package core.
//
// The package includes:
//   - Client: account, balance and connectivity operations
//   - Call and Client.Do: the generic path for any other endpoint
//   - Normalizer: conversion from exchange wire records to core types
//
// Example usage:
//
//	creds := auth.NewAPIKeyAndSecret(apiKey, secretKey)
//	client, err := binance.New(creds, core.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	btc, err := client.GetBalance(ctx, "BTC")
package binance
