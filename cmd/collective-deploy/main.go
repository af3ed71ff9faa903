/*
collective-deploy sets up the HVYM collective contract set on a Neo
network: both token factories loaded with their templates and the
collective contract wired to them and to the payment token.

Compiled contract artifacts are expected in the layout produced by the
neo-go compiler, one subdirectory with contract.nef and manifest.json per
contract.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/hvym/collective-contract/contracts"
	"github.com/hvym/collective-contract/deploy"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := flag.String("wallet", "", "Path to the deployer NEP-6 wallet")
	walletPassword := flag.String("password", "", "Password of the deployer wallet account")
	contractsDir := flag.String("contracts", "build", "Directory with the compiled contract artifacts")
	adminAddr := flag.String("admin", "", "Neo address of the collective administrator")
	payTokenAddr := flag.String("paytoken", "", "Neo address of the NEP-17 payment token contract")
	joinFee := flag.Int64("join-fee", 7, "Fee charged from joining members")
	mintFee := flag.Int64("mint-fee", 7, "Fee charged for IPFS token deployment")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *walletPath == "":
		log.Fatal("missing deployer wallet")
	case *adminAddr == "":
		log.Fatal("missing administrator address")
	case *payTokenAddr == "":
		log.Fatal("missing payment token address")
	}

	err := run(*neoRPCEndpoint, *walletPath, *walletPassword, *contractsDir,
		*adminAddr, *payTokenAddr, *joinFee, *mintFee)
	if err != nil {
		log.Fatal(err)
	}
}

func run(endpoint, walletPath, walletPassword, contractsDir, adminAddr, payTokenAddr string, joinFee, mintFee int64) error {
	admin, err := address.StringToUint160(adminAddr)
	if err != nil {
		return fmt.Errorf("decode administrator address: %w", err)
	}

	payToken, err := address.StringToUint160(payTokenAddr)
	if err != nil {
		return fmt.Errorf("decode payment token address: %w", err)
	}

	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return fmt.Errorf("open deployer wallet: %w", err)
	}

	acc := w.GetAccount(w.GetChangeAddress())
	if acc == nil {
		return errors.New("deployer wallet has no usable account")
	}

	err = acc.Decrypt(walletPassword, w.Scrypt)
	if err != nil {
		return fmt.Errorf("unlock deployer account: %w", err)
	}

	cs, err := contracts.ReadDir(contractsDir)
	if err != nil {
		return fmt.Errorf("read compiled contracts: %w", err)
	}

	c, err := rpcclient.New(context.Background(), endpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("RPC client dial: %w", err)
	}
	defer c.Close()

	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	addrs, err := deploy.Deploy(ctx, deploy.Prm{
		Logger:       logger,
		Blockchain:   c,
		LocalAccount: acc,
		Collective: deploy.CollectivePrm{
			Common: deploy.CommonDeployPrm{
				NEF:      cs.Collective.NEF,
				Manifest: cs.Collective.Manifest,
			},
			Admin:    admin,
			PayToken: payToken,
			JoinFee:  joinFee,
			MintFee:  mintFee,
		},
		OpusToken: deploy.CommonDeployPrm{
			NEF:      cs.OpusToken.NEF,
			Manifest: cs.OpusToken.Manifest,
		},
		NodeFactory: deploy.FactoryPrm{
			Common: deploy.CommonDeployPrm{
				NEF:      cs.NodeFactory.NEF,
				Manifest: cs.NodeFactory.Manifest,
			},
			Token: deploy.CommonDeployPrm{
				NEF:      cs.NodeToken.NEF,
				Manifest: cs.NodeToken.Manifest,
			},
		},
		IPFSFactory: deploy.FactoryPrm{
			Common: deploy.CommonDeployPrm{
				NEF:      cs.IPFSFactory.NEF,
				Manifest: cs.IPFSFactory.Manifest,
			},
			Token: deploy.CommonDeployPrm{
				NEF:      cs.IPFSToken.NEF,
				Manifest: cs.IPFSToken.Manifest,
			},
		},
	})
	if err != nil {
		return err
	}

	log.Printf("collective: %s\n", address.Uint160ToString(addrs.Collective))
	log.Printf("node factory: %s\n", address.Uint160ToString(addrs.NodeFactory))
	log.Printf("ipfs factory: %s\n", address.Uint160ToString(addrs.IPFSFactory))
	log.Printf("opus (after launch): %s\n", address.Uint160ToString(addrs.OpusToken))
	return nil
}
